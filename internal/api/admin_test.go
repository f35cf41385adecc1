package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"easy_pay/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	s := setupServer(t)
	customer := s.addUser(t, "01711111111", domain.RoleCustomer, "0")

	paths := []struct{ method, path string }{
		{http.MethodGet, "/totalBalance"},
		{http.MethodGet, "/allUser"},
		{http.MethodGet, "/allAgent"},
		{http.MethodGet, "/allTransaction"},
		{http.MethodPatch, "/userBlock/1"},
		{http.MethodPatch, "/agentAccept/1"},
		{http.MethodPatch, "/agentReject/1"},
	}
	for _, p := range paths {
		t.Run(p.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, s.do(t, p.method, p.path, "", nil).Code)
			assert.Equal(t, http.StatusForbidden, s.do(t, p.method, p.path, s.tokenFor(t, customer), nil).Code)
		})
	}
}

func TestIssuedToken_CannotPassAdminGate(t *testing.T) {
	s := setupServer(t)
	admin := s.addUser(t, "01700000000", domain.RoleAdmin, "0")
	agent := s.addUser(t, "01733333333", domain.RoleAgent, "0")

	w := s.do(t, http.MethodPost, "/jwt", "", gin.H{"email": admin.Email, "uid": admin.ID})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	for i := 0; i < 3; i++ {
		w := s.do(t, http.MethodPatch, fmt.Sprintf("/agentAccept/%d", agent.ID), token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
	assert.True(t, s.balance(t, agent.Number).IsZero())

	claims := decode(t, s.do(t, http.MethodGet, "/verifyToken", token, nil))
	assert.NotContains(t, claims, "uid")
	assert.Equal(t, admin.Email, claims["email"])
}

func TestLoginToken_PassesAdminGate(t *testing.T) {
	s := setupServer(t)
	admin := s.addUser(t, "01700000000", domain.RoleAdmin, "0")

	w := s.do(t, http.MethodGet, "/login?email="+admin.Email+"&pin="+testPin, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/totalBalance", token, nil).Code)
}

func TestTotalBalance(t *testing.T) {
	s := setupServer(t)
	admin := s.addUser(t, "01700000000", domain.RoleAdmin, "10.5")
	s.addUser(t, "01711111111", domain.RoleCustomer, "100.25")
	s.addUser(t, "01733333333", domain.RoleAgent, "0.0001")
	token := s.tokenFor(t, admin)

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodGet, "/totalBalance", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "110.7501", decode(t, w)["totalBalance"])
	}
}

func TestUserBlock(t *testing.T) {
	s := setupServer(t)
	admin := s.addUser(t, "01700000000", domain.RoleAdmin, "0")
	u := s.addUser(t, "01711111111", domain.RoleCustomer, "0")
	token := s.tokenFor(t, admin)
	path := fmt.Sprintf("/userBlock/%d", u.ID)

	for _, blocked := range []bool{true, true, false} {
		w := s.do(t, http.MethodPatch, path, token, gin.H{"isBlocked": blocked})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got, err := s.users.FindByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, blocked, got.IsBlocked)
	}

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPatch, path, token, gin.H{}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPatch, "/userBlock/abc", token, gin.H{"isBlocked": true}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, "/userBlock/9999", token, gin.H{"isBlocked": true}).Code)
}

func TestAgentAccept(t *testing.T) {
	s := setupServer(t)
	admin := s.addUser(t, "01700000000", domain.RoleAdmin, "0")
	agent := s.addUser(t, "01733333333", domain.RoleAgent, "0")
	token := s.tokenFor(t, admin)

	w := s.do(t, http.MethodPatch, fmt.Sprintf("/agentAccept/%d", agent.ID), token, gin.H{"notification": "Welcome aboard"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := s.users.FindByID(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AgentApproved, got.AgentStatus)
	requireEqualDecimal(t, "100000", got.Balance)
	require.NotEmpty(t, got.Notifications)
	assert.Equal(t, "Welcome aboard", got.Notifications[0].Msg)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, "/agentAccept/9999", token, nil).Code)
}

func TestAgentReject_DefaultMessage(t *testing.T) {
	s := setupServer(t)
	admin := s.addUser(t, "01700000000", domain.RoleAdmin, "0")
	agent := s.addUser(t, "01733333333", domain.RoleAgent, "0")

	w := s.do(t, http.MethodPatch, fmt.Sprintf("/agentReject/%d", agent.ID), s.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := s.users.FindByID(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AgentRejected, got.AgentStatus)
	assert.True(t, got.Balance.IsZero())
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, defaultRejectMsg, got.Notifications[0].Msg)
}

func TestListUsersAndAgents(t *testing.T) {
	s := setupServer(t)
	admin := s.addUser(t, "01700000000", domain.RoleAdmin, "0")
	s.addUser(t, "01711111111", domain.RoleCustomer, "0")
	s.addUser(t, "01811111111", domain.RoleCustomer, "0")
	s.addUser(t, "01733333333", domain.RoleAgent, "0")
	token := s.tokenFor(t, admin)

	body := decode(t, s.do(t, http.MethodGet, "/allUser?page_size=2", token, nil))
	assert.EqualValues(t, 4, body["total"])
	assert.EqualValues(t, 2, body["total_pages"])
	assert.Len(t, body["users"], 2)
	assert.Equal(t, false, body["cached"])

	body = decode(t, s.do(t, http.MethodGet, "/allUser?number=0181", token, nil))
	assert.EqualValues(t, 1, body["total"])

	body = decode(t, s.do(t, http.MethodGet, "/allAgent", token, nil))
	assert.EqualValues(t, 1, body["total"])
	users := body["users"].([]any)
	assert.Equal(t, "01733333333", users[0].(map[string]any)["number"])
}

func TestListTransactions(t *testing.T) {
	s := setupServer(t)
	admin := s.addUser(t, "01700000000", domain.RoleAdmin, "0")
	a := s.addUser(t, "01711111111", domain.RoleCustomer, "1000")
	s.addUser(t, "01722222222", domain.RoleCustomer, "0")
	s.addUser(t, "01733333333", domain.RoleAgent, "0")

	send := gin.H{"pin": testPin, "senderId": "01711111111", "receiverId": "01722222222", "amountSend": "10"}
	cashOut := gin.H{"pin": testPin, "senderId": "01711111111", "receiverId": "01733333333", "amountSend": "10", "fee": "1.5"}
	require.Equal(t, true, decode(t, s.do(t, http.MethodPost, "/sendMoney", s.tokenFor(t, a), send))["success"])
	require.Equal(t, true, decode(t, s.do(t, http.MethodPost, "/cashOut", s.tokenFor(t, a), cashOut))["success"])

	token := s.tokenFor(t, admin)
	body := decode(t, s.do(t, http.MethodGet, "/allTransaction", token, nil))
	assert.EqualValues(t, 2, body["total"])
	txs := body["transactions"].([]any)
	assert.Equal(t, "cashOut", txs[0].(map[string]any)["type"]) // Newest first

	body = decode(t, s.do(t, http.MethodGet, "/allTransaction?type=send", token, nil))
	assert.EqualValues(t, 1, body["total"])

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/allTransaction?type=refund", token, nil).Code)
}
