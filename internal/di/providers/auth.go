package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/linkstash/internal/auth"
	"github.com/listenupapp/linkstash/internal/config"
	"github.com/listenupapp/linkstash/internal/logger"
)

// AuthKey wraps the authentication key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the access token key.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.ResolveKey(cfg.Auth.AccessTokenKey, cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenServiceFromKey([]byte(authKey), cfg.Auth.AccessTokenDuration)
}

// ProvideVerifier provides the bearer token verifier. PASETO tokens are
// always accepted; HS256 JWTs are accepted when a secret is configured.
func ProvideVerifier(i do.Injector) (auth.Verifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	chain := auth.Chain{tokens}

	if cfg.Auth.JWTSecret != "" {
		jwtVerifier, err := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
		if err != nil {
			return nil, err
		}
		chain = append(chain, jwtVerifier)
		log.Info("External JWT verification enabled", "issuer", cfg.Auth.JWTIssuer)
	}

	return chain, nil
}
