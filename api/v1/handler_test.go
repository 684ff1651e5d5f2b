package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/BananaRealm/internal/achievement"
	"github.com/thesrcielos/BananaRealm/internal/game"
	"github.com/thesrcielos/BananaRealm/internal/leaderboard"
	"github.com/thesrcielos/BananaRealm/internal/scoring"
	"github.com/thesrcielos/BananaRealm/internal/store/storetest"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

const adminUserID = "1"

func setupServer(t *testing.T, submitPerMinute int) (*echo.Echo, string) {
	t.Helper()
	user.ConfigureJWT("handler-secret", time.Hour)

	gw, _ := storetest.NewGateway(t)
	repo := new(user.MockUserRepository)
	repo.On("GetUser", uint(5)).Return(&user.User{ID: 5, Username: "kong", Email: "kong@jungle.io"}, nil)

	userService := user.NewUserService(repo)
	games := game.NewStoreRepository(gw)
	boards := leaderboard.NewService(leaderboard.NewStoreRepository(gw), userService)
	achievements := achievement.NewService(achievement.NewStoreRepository(gw), games, nil)

	UserService = userService
	StatsService = game.NewStatsService(games)
	LeaderboardService = boards
	AchievementService = achievements
	Aggregator = scoring.NewAggregator(games, boards, achievements, userService)

	e := echo.New()
	Register(e, RouteConfig{SubmitPerMinute: submitPerMinute, AdminUserIDs: []string{adminUserID}})

	token, err := user.GenerateJWT(&user.User{ID: 5, Username: "kong", Email: "kong@jungle.io"})
	require.NoError(t, err)
	return e, token
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const firstGameBody = `{"score":150,"difficulty":"easy","level":1,"hintsUsed":0,"timeLeft":40,"completed":false}`

func TestSubmitGameHandler(t *testing.T) {
	e, token := setupServer(t, 30)

	rec := do(e, http.MethodPost, "/api/v1/games", token, firstGameBody)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["saved"])

	outcome := body["outcome"].(map[string]interface{})
	stats := outcome["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalGames"])

	ids := []string{}
	for _, u := range outcome["unlocked"].([]interface{}) {
		ids = append(ids, u.(map[string]interface{})["id"].(string))
	}
	assert.Contains(t, ids, "beginner")
	assert.Contains(t, ids, "first_blood")
	assert.Contains(t, ids, "perfect_game")
}

func TestSubmitGameHandler_RequiresToken(t *testing.T) {
	e, _ := setupServer(t, 30)

	rec := do(e, http.MethodPost, "/api/v1/games", "", firstGameBody)

	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	assert.Less(t, rec.Code, http.StatusInternalServerError)
}

func TestSubmitGameHandler_RejectsInvalidResult(t *testing.T) {
	e, token := setupServer(t, 30)

	tests := []string{
		`{"score":-5,"difficulty":"easy","level":1}`,
		`{"score":10,"difficulty":"extreme","level":1}`,
		`{"score":900,"difficulty":"hard","level":3,"completed":true}`,
		`not json`,
	}
	for _, body := range tests {
		rec := do(e, http.MethodPost, "/api/v1/games", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestSubmitGameHandler_RateLimited(t *testing.T) {
	e, token := setupServer(t, 1)

	first := do(e, http.MethodPost, "/api/v1/games", token, firstGameBody)
	second := do(e, http.MethodPost, "/api/v1/games", token, firstGameBody)

	assert.Equal(t, http.StatusAccepted, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestLeaderboardHandlers(t *testing.T) {
	e, token := setupServer(t, 30)
	require.Equal(t, http.StatusAccepted, do(e, http.MethodPost, "/api/v1/games", token, firstGameBody).Code)

	rec := do(e, http.MethodGet, "/api/v1/leaderboard/easy?limit=5", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode(t, rec)["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "kong", entry["username"])
	assert.Equal(t, float64(150), entry["score"])

	rec = do(e, http.MethodGet, "/api/v1/leaderboard/easy/rank", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rank := decode(t, rec)
	assert.Equal(t, true, rank["ranked"])
	assert.Equal(t, float64(1), rank["rank"])

	rec = do(e, http.MethodGet, "/api/v1/leaderboard/hard/rank", token, "")
	assert.Equal(t, false, decode(t, rec)["ranked"])

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/v1/leaderboard/impossible", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/v1/leaderboard/easy?limit=zero", "", "").Code)
}

func TestAchievementBoardHandler(t *testing.T) {
	e, token := setupServer(t, 30)
	require.Equal(t, http.StatusAccepted, do(e, http.MethodPost, "/api/v1/games", token, firstGameBody).Code)

	rec := do(e, http.MethodGet, "/api/v1/achievements/catalog", token, "")

	require.Equal(t, http.StatusOK, rec.Code)
	board := decode(t, rec)
	assert.Equal(t, float64(10), board["total"])
	assert.Equal(t, float64(4), board["unlockedCount"])
}

func TestUserStatsHandler(t *testing.T) {
	e, token := setupServer(t, 30)

	rec := do(e, http.MethodGet, "/api/v1/users/me/stats", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode(t, rec)["stats"])

	require.Equal(t, http.StatusAccepted, do(e, http.MethodPost, "/api/v1/games", token, firstGameBody).Code)

	rec = do(e, http.MethodGet, "/api/v1/users/me/progress", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	progress := decode(t, rec)["progress"].(map[string]interface{})
	easy := progress["easy"].(map[string]interface{})
	assert.Equal(t, float64(150), easy["highScore"])
}

func TestBackfillHandler_AdminOnly(t *testing.T) {
	e, token := setupServer(t, 30)
	require.Equal(t, http.StatusAccepted, do(e, http.MethodPost, "/api/v1/games", token, firstGameBody).Code)

	rec := do(e, http.MethodPost, "/api/v1/leaderboard/backfill", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/v1/leaderboard/backfill", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	adminToken, err := user.GenerateJWT(&user.User{ID: 1, Username: "zookeeper", Email: "keeper@jungle.io"})
	require.NoError(t, err)
	rec = do(e, http.MethodPost, "/api/v1/leaderboard/backfill", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(0), decode(t, rec)["updated"])
}

func TestSignupHandler_RequiresEmail(t *testing.T) {
	e, _ := setupServer(t, 30)

	for _, body := range []string{
		`{"username":"nomail","password":"pass123"}`,
		`{"username":"nomail2","email":"","password":"pass123"}`,
	} {
		rec := do(e, http.MethodPost, "/api/v1/users/signup", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	}
}
