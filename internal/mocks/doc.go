// Package mocks provides shared test doubles.
//
// Mocks use function fields so a test overrides only the behavior it cares
// about:
//
//	jwtSvc := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return nil, auth.ErrExpiredToken
//	    },
//	}
//
// MockUserStore and InMemoryJobRepository fall back to working in-memory
// storage when no function field is set, which lets handler tests run the
// real services end to end.
package mocks
