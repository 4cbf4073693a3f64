package domain

import (
	"errors"
	"testing"
)

func TestParseRoleSet(t *testing.T) {
	tests := []struct {
		claim   string
		want    string
		wantErr bool
	}{
		{claim: "CUSTOMER", want: "CUSTOMER"},
		{claim: "BANKER", want: "BANKER"},
		{claim: "CUSTOMER,BANKER", want: "CUSTOMER,BANKER"},
		{claim: "BANKER, CUSTOMER,BANKER", want: "BANKER,CUSTOMER"},
		{claim: "", wantErr: true},
		{claim: "   ", wantErr: true},
		{claim: "ADMIN", wantErr: true},
		{claim: "CUSTOMER,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.claim, func(t *testing.T) {
			got, err := ParseRoleSet(tt.claim)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestIdentity_HasRole(t *testing.T) {
	id := &Identity{Subject: "kim@hana.com", Roles: NewRoleSet(RoleCustomer)}
	if !id.HasRole(RoleCustomer) {
		t.Error("expected CUSTOMER")
	}
	if id.HasRole(RoleBanker) {
		t.Error("unexpected BANKER")
	}

	var none *Identity
	if none.HasRole(RoleCustomer) {
		t.Error("nil identity must have no roles")
	}
}

func TestNotFoundFamily(t *testing.T) {
	for _, err := range []error{
		ErrQuestionNotFound, ErrAnswerNotFound, ErrCustomerNotFound,
		ErrBankerNotFound, ErrCategoryNotFound, ErrBranchNotFound, ErrNoCustomerQuestions,
	} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v should be a NotFound", err)
		}
	}

	expired := &ExpiredCredentialError{Subject: "kim@hana.com"}
	if !errors.Is(expired, ErrExpiredCredential) {
		t.Error("ExpiredCredentialError should unwrap to ErrExpiredCredential")
	}
	if errors.Is(expired, ErrInvalidCredential) {
		t.Error("expired must stay distinct from invalid")
	}
}
