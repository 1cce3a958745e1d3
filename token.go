package infirmary

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const accessTokenClaim = "accessToken"

// UserClaims are the claims of a user's access token plus the token itself under "accessToken".
type UserClaims map[string]any

func (c UserClaims) AccessToken() string {
	token, _ := c[accessTokenClaim].(string)
	return token
}

// Subject returns the "sub" claim, empty when absent
func (c UserClaims) Subject() string {
	subject, _ := c["sub"].(string)
	return subject
}

// DecodeUserToken reads the claims of a JWT without verifying its signature; the
// backend is the one enforcing the token. An empty token yields nil claims and no error.
func DecodeUserToken(accessToken string) (UserClaims, error) {
	if accessToken == "" {
		return nil, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, errors.Wrapf(ErrInvalidToken, "%v", err)
	}

	user := make(UserClaims, len(claims)+1)
	for key, value := range claims {
		user[key] = value
	}
	user[accessTokenClaim] = accessToken
	return user, nil
}
