package authentication

import (
	"time"

	"github.com/DaniPVargas/Wearvana/src/core/config"
	"github.com/DaniPVargas/Wearvana/src/core/helpers"
	"github.com/DaniPVargas/Wearvana/src/core/passwordless"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Handler verifies passwordless sign-in tokens and issues session JWTs.
type Handler struct {
	Passwordless *passwordless.Client
}

func NewHandler(pwless *passwordless.Client) *Handler {
	return &Handler{Passwordless: pwless}
}

type authBody struct {
	Token string `json:"token" validate:"required"`
}

// issueJwtToken generates a session JWT for an authenticated user.
func issueJwtToken(userID string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["sub"] = userID
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(30 * 24 * time.Hour).Unix()

	secretKey := config.Config("JWT_SECRET")
	return token.SignedString([]byte(secretKey))
}

// Authenticate verifies the provider sign-in token and returns the
// verified identity together with a session JWT.
func (h *Handler) Authenticate(c *fiber.Ctx) error {
	body := new(authBody)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, helpers.KindValidationError, "Missing token", err)
	}

	user, err := h.Passwordless.SignIn(c.UserContext(), body.Token)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusUnauthorized, helpers.KindUpstreamAuthError, "Sign-in verification failed", err)
	}

	sessionToken, err := issueJwtToken(user.UserID)
	if err != nil {
		return helpers.HandleError(c, fiber.StatusInternalServerError, helpers.KindInternalError, "Failed to generate session token", err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "Sign-in successful", fiber.Map{
		"user_id":    user.UserID,
		"auth_token": sessionToken,
	})
}
