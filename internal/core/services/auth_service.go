package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hana-qna/internal/core/domain"
	"hana-qna/internal/pkg/jwt"
	"hana-qna/internal/pkg/metrics"
)

// AuthService issues token pairs at login and resolves access tokens into identities
type AuthService struct {
	verifier CredentialVerifier
	codec    *jwt.Codec
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	verifier CredentialVerifier,
	codec *jwt.Codec,
	recorder metrics.Recorder,
) *AuthService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuthService{
		verifier: verifier,
		codec:    codec,
		metrics:  recorder,
		now:      time.Now,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies the credential and issues an access/refresh token pair
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*domain.TokenPair, error) {
	// 1. Verify credential
	identity, err := s.verifier.Verify(ctx, input.Email, input.Password)
	if err != nil {
		s.metrics.RecordLogin(false)
		return nil, err
	}

	// 2. Access token carries subject, roles and email
	issuedAt := s.now()
	accessToken, err := s.codec.Issue(identity.Subject, identity.Roles.String(), identity.Email, issuedAt)
	if err != nil {
		return nil, err
	}

	// 3. Refresh token carries only exp
	refreshToken, err := s.codec.IssueRefresh(issuedAt)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLogin(true)
	log.Printf("✅ Logged in: %s [%s]", identity.Subject, identity.Roles)

	return &domain.TokenPair{
		GrantType:    domain.GrantTypeBearer,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    issuedAt.Add(s.codec.Validity()),
	}, nil
}

// Resolve turns an access token into an identity.
//
// Failures are distinct: ErrInvalidCredential for a forged or unreadable
// token, *domain.ExpiredCredentialError for a genuine token past its expiry,
// and ErrMalformedCredential for a genuine token without a usable auth claim.
func (s *AuthService) Resolve(accessToken string) (*domain.Identity, error) {
	decoded, err := s.codec.Decode(accessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.metrics.RecordTokenRejected("expired")
			return nil, &domain.ExpiredCredentialError{Subject: decoded.Subject}
		}
		s.metrics.RecordTokenRejected("invalid")
		return nil, domain.ErrInvalidCredential
	}

	roles, err := domain.ParseRoleSet(decoded.Auth)
	if err != nil {
		s.metrics.RecordTokenRejected("malformed")
		log.Printf("❌ Signed token for %q has no usable authority claim: %v", decoded.Subject, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCredential, err)
	}

	return &domain.Identity{
		Subject: decoded.Subject,
		Roles:   roles,
		Email:   decoded.UserEmail,
	}, nil
}

// ExtractSubject reads the subject of a correctly signed token, expired or not.
// For logging only; never authorize on it.
func (s *AuthService) ExtractSubject(token string) (string, error) {
	decoded, err := s.codec.DecodeUnvalidated(token)
	if err != nil {
		return "", domain.ErrInvalidCredential
	}
	return decoded.Subject, nil
}
