package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour-booking/constants"
	"tour-booking/logger"
	"tour-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// ActorResolver maps a token subject to the actor behind it.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userUUID string) (types.Actor, error)
}

// ActorResolverFunc adapts a plain function to ActorResolver.
type ActorResolverFunc func(ctx context.Context, userUUID string) (types.Actor, error)

func (f ActorResolverFunc) ResolveActor(ctx context.Context, userUUID string) (types.Actor, error) {
	return f(ctx, userUUID)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusUnauthorized,
		Code:    "unauthorized",
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header missing")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", fmt.Errorf("invalid token format")
	}
	return parts[1], nil
}

// ParseToken verifies an HS256 token and returns its subject (the user UUID).
func ParseToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse JWT: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return subject, nil
}

// SignToken issues an HS256 token for userUUID. The identity provider does
// this in production; it is used by tools and tests.
func SignToken(secret []byte, userUUID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userUUID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Authenticate verifies the bearer token and stores the resolved actor in
// the request locals.
func Authenticate(secret []byte, resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return unauthorized(c, "Authentication required")
		}

		subject, err := ParseToken(secret, tokenString)
		if err != nil {
			logger.Debug(err.Error())
			return unauthorized(c, "Invalid or expired token")
		}

		actor, err := resolver.ResolveActor(c.UserContext(), subject)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Failed to resolve actor", err)
			}
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// CurrentActor returns the actor stored by Authenticate.
func CurrentActor(c *fiber.Ctx) (types.Actor, bool) {
	actor, ok := c.Locals(actorKey).(types.Actor)
	return actor, ok
}

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...constants.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := CurrentActor(c)
		if !ok {
			return unauthorized(c, "Authentication required")
		}
		for _, role := range roles {
			if actor.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Insufficient permissions",
			Status:  fiber.StatusForbidden,
			Code:    "forbidden",
		})
	}
}
