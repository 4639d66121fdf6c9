package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "mortgage-test",
		Expiration: 15 * time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateToken("user-7", "client-42", []string{RoleClient})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.Subject)
	assert.Equal(t, "client-42", claims.ClientID)
	assert.Equal(t, []string{RoleClient}, claims.Roles)
	assert.Equal(t, "mortgage-test", claims.Issuer)
}

func TestValidateTokenRejects(t *testing.T) {
	good := newTestJWTService(t)

	expired, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "mortgage-test",
		Expiration: -time.Hour,
	})
	require.NoError(t, err)
	otherKey, err := NewJWTService(JWTConfig{
		Secret:     "another-secret",
		Issuer:     "mortgage-test",
		Expiration: time.Minute,
	})
	require.NoError(t, err)
	otherIssuer, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "someone-else",
		Expiration: time.Minute,
	})
	require.NoError(t, err)

	for name, issuer := range map[string]*JWTService{
		"expired":        expired,
		"bad signature":  otherKey,
		"foreign issuer": otherIssuer,
	} {
		t.Run(name, func(t *testing.T) {
			token, err := issuer.GenerateToken("u", "", []string{RoleAdvisor})
			require.NoError(t, err)

			_, err = good.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestRSAValidationOnly(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	require.NoError(t, err)

	issuer, err := NewJWTService(JWTConfig{PrivateKeyPEM: string(privPEM), Expiration: time.Minute})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM)})
	require.NoError(t, err)

	token, err := issuer.GenerateToken("advisor-1", "", []string{RoleAdvisor})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(RoleAdvisor))

	_, err = validator.GenerateToken("x", "", nil)
	assert.Error(t, err)

	_, err = NewJWTService(JWTConfig{})
	assert.Error(t, err)
}

func TestCanAccessClient(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		client string
		want   bool
	}{
		{"advisor any client", Claims{Roles: []string{RoleAdvisor}}, "c1", true},
		{"admin any client", Claims{Roles: []string{RoleAdmin}}, "c1", true},
		{"client own", Claims{ClientID: "c1", Roles: []string{RoleClient}}, "c1", true},
		{"client other", Claims{ClientID: "c1", Roles: []string{RoleClient}}, "c2", false},
		{"client without binding", Claims{Roles: []string{RoleClient}}, "", false},
		{"no roles", Claims{ClientID: "c1"}, "c1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.CanAccessClient(tt.client))
		})
	}
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	want := &Claims{ClientID: "c1", Roles: []string{RoleClient}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), want))
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t)
	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})

	var seen *Claims
	handler := func(ctx context.Context, _ any) (any, error) {
		seen, _ = ClaimsFromContext(ctx)
		return "ok", nil
	}
	info := &grpc.UnaryServerInfo{FullMethod: "/mortgage.v1.SimulatorService/RunSimulation"}

	_, err := interceptor(context.Background(), nil, info, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	token, err := svc.GenerateToken("u", "", []string{RoleAdvisor})
	require.NoError(t, err)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))

	resp, err := interceptor(ctx, nil, info, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	require.NotNil(t, seen)
	assert.True(t, seen.HasRole(RoleAdvisor))

	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
	assert.NoError(t, err)
}

func TestHTTPMiddleware(t *testing.T) {
	svc := newTestJWTService(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(claims.ClientID))
	})
	h := HTTPMiddleware(svc, next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/simulations", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulations", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := svc.GenerateToken("u", "client-9", []string{RoleClient})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/simulations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "client-9", rec.Body.String())
}
