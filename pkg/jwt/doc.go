// Package jwt provides JSON Web Token utilities for the Escapade API.
//
// The jwt package handles RS256 token signing, validation, and claims
// extraction for authentication.
//
// # Token Signing
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "api.escapade.app",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{UserID: userID, Email: email})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// A service built from only a public key can validate but not sign, which
// suits processes that never issue tokens.
package jwt
