package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubVoteService struct {
	result *ports.VoteResult
	voted  bool
	err    error
	gotIn  ports.VoteInput
}

func (s *stubVoteService) RegisterVote(_ context.Context, input ports.VoteInput) (*ports.VoteResult, error) {
	s.gotIn = input
	return s.result, s.err
}

func (s *stubVoteService) HasVoted(_ context.Context, input ports.VoteInput) (bool, error) {
	s.gotIn = input
	return s.voted, s.err
}

type stubParticipantService struct {
	participants []domain.Participant
	totals       []domain.CategoryTotal
	added        *domain.Participant
	replaced     int
	err          error
}

func (s *stubParticipantService) Add(context.Context, ports.AddParticipantInput) (*domain.Participant, error) {
	return s.added, s.err
}

func (s *stubParticipantService) BulkReplace(context.Context, []ports.ImportEntry) (int, error) {
	return s.replaced, s.err
}

func (s *stubParticipantService) All(context.Context) ([]domain.Participant, error) {
	return s.participants, s.err
}

func (s *stubParticipantService) Top(context.Context, int) ([]domain.Participant, error) {
	return s.participants, s.err
}

func (s *stubParticipantService) CategoryTotals(context.Context) ([]domain.CategoryTotal, error) {
	return s.totals, s.err
}

func (s *stubParticipantService) WithZeroVotes(context.Context) ([]domain.Participant, error) {
	return s.participants, s.err
}

type stubTallyService struct {
	snapshot *domain.TallySnapshot
	err      error
	rebuilt  bool
}

func (s *stubTallyService) Realtime(context.Context) (*domain.TallySnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubTallyService) Rebuild(context.Context) error {
	s.rebuilt = true
	return s.err
}

type stubAuthService struct{}

func (s *stubAuthService) Register(_ context.Context, username, _, role string) (*domain.User, error) {
	return &domain.User{ID: uuid.New(), Username: username, Role: role}, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, error) {
	return "token", nil
}

func signedToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(15 * time.Minute).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func testHandler(vote *stubVoteService, participant *stubParticipantService, tally *stubTallyService) http.Handler {
	return NewHandler(
		NewAuthHandler(&stubAuthService{}),
		NewParticipantHandler(participant),
		NewVoteHandler(vote),
		NewTallyHandler(tally),
		NewAuthMiddleware([]byte(testSecret)),
	)
}

func TestRegisterVote_Accepted(t *testing.T) {
	vote := &stubVoteService{result: &ports.VoteResult{Accepted: true, NewCount: 1}}
	handler := testHandler(vote, &stubParticipantService{}, &stubTallyService{})

	userID := uuid.New()
	req := httptest.NewRequest("POST", "/api/participants/1/votes", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, userID, domain.RolePublic)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var result ports.VoteResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.Accepted)
	assert.Equal(t, int64(1), result.NewCount)
	assert.Equal(t, userID, vote.gotIn.UserID)
	assert.Equal(t, int64(1), vote.gotIn.ParticipantID)
}

func TestRegisterVote_Duplicate(t *testing.T) {
	vote := &stubVoteService{result: &ports.VoteResult{Accepted: false, Reason: "already voted"}}
	handler := testHandler(vote, &stubParticipantService{}, &stubTallyService{})

	req := httptest.NewRequest("POST", "/api/participants/1/votes", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, uuid.New(), domain.RolePublic)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var result ports.VoteResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.False(t, result.Accepted)
	assert.Equal(t, "already voted", result.Reason)
}

func TestRegisterVote_UnknownParticipant(t *testing.T) {
	vote := &stubVoteService{err: domain.ErrParticipantNotFound}
	handler := testHandler(vote, &stubParticipantService{}, &stubTallyService{})

	req := httptest.NewRequest("POST", "/api/participants/99/votes", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, uuid.New(), domain.RolePublic)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterVote_RequiresAuth(t *testing.T) {
	handler := testHandler(&stubVoteService{}, &stubParticipantService{}, &stubTallyService{})

	req := httptest.NewRequest("POST", "/api/participants/1/votes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterVote_BearerHeaderAccepted(t *testing.T) {
	vote := &stubVoteService{result: &ports.VoteResult{Accepted: true, NewCount: 1}}
	handler := testHandler(vote, &stubParticipantService{}, &stubTallyService{})

	req := httptest.NewRequest("POST", "/api/participants/1/votes", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, uuid.New(), domain.RolePublic))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMyVote(t *testing.T) {
	vote := &stubVoteService{voted: true}
	handler := testHandler(vote, &stubParticipantService{}, &stubTallyService{})

	req := httptest.NewRequest("GET", "/api/participants/1/my-vote", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, uuid.New(), domain.RolePublic)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body["voted"])
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	handler := testHandler(&stubVoteService{}, &stubParticipantService{}, &stubTallyService{})

	req := httptest.NewRequest("GET", "/api/participants/top", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, uuid.New(), domain.RolePublic)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTally_IsPublic(t *testing.T) {
	tally := &stubTallyService{snapshot: &domain.TallySnapshot{
		Participants: []domain.TallyEntry{{ID: 1, Name: "A", VoteCount: 2}},
		TotalVotes:   2,
	}}
	handler := testHandler(&stubVoteService{}, &stubParticipantService{}, tally)

	req := httptest.NewRequest("GET", "/api/tally", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot domain.TallySnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snapshot))
	assert.Equal(t, int64(2), snapshot.TotalVotes)
	require.Len(t, snapshot.Participants, 1)
	assert.Equal(t, "A", snapshot.Participants[0].Name)
}

func TestRebuild_AdminOnly(t *testing.T) {
	tally := &stubTallyService{}
	handler := testHandler(&stubVoteService{}, &stubParticipantService{}, tally)

	req := httptest.NewRequest("POST", "/api/tally/rebuild", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, uuid.New(), domain.RoleAdmin)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, tally.rebuilt)
}

func TestBulkReplace_MalformedInput(t *testing.T) {
	participant := &stubParticipantService{err: domain.ErrInvalidImport}
	handler := testHandler(&stubVoteService{}, participant, &stubTallyService{})

	body := strings.NewReader(`[{"id": 1, "category": "Music"}]`)
	req := httptest.NewRequest("PUT", "/api/participants/", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signedToken(t, uuid.New(), domain.RoleAdmin)})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
