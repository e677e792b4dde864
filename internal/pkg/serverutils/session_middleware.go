package serverutils

import (
	"time"

	"concept-search-be/internal/constant"
	"concept-search-be/internal/repository/contract"
	"concept-search-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionLocalsKey = "session"

// SessionMiddleware resolves the server-side session for the request.
// A missing or unknown cookie gets a fresh session id; the loaded
// SessionData is exposed via Locals and persisted after the handler
// runs, successful or not.
func SessionMiddleware(sessions contract.SessionRepository, ttl time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sessionID := ctx.Cookies(constant.SessionCookieName)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		sess, found := sessions.Get(sessionID)
		if !found {
			sess = store.NewSessionData(sessionID)
		}

		ctx.Cookie(&fiber.Cookie{
			Name:     constant.SessionCookieName,
			Value:    sessionID,
			Expires:  time.Now().Add(ttl),
			HTTPOnly: true,
			SameSite: "Lax",
		})

		ctx.Locals(sessionLocalsKey, sess)

		err := ctx.Next()

		// Persist even on handler error: token mutations that happened
		// before the failure must survive, last-write-wins.
		sessions.Save(sess)

		return err
	}
}

// SessionFromCtx returns the request's session bag. It only returns nil
// when SessionMiddleware is not mounted on the route.
func SessionFromCtx(ctx *fiber.Ctx) *store.SessionData {
	sess, _ := ctx.Locals(sessionLocalsKey).(*store.SessionData)
	return sess
}
