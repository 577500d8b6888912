// Package mocks holds hand-written test doubles shared across packages.
//
// Each mock has one function field per interface method. A nil field falls
// back to the mock's canned fields (Token, Claims, Err, ...):
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{Subject: "ana", Scope: "employee.read"}, nil
//	    },
//	}
package mocks
