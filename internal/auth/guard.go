package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/gambler-service/pkg/util/errorutil"
)

const bearerPrefix = "Bearer "

// Outcome is how a guard resolved a single request.
type Outcome int

const (
	// OutcomeSuccess means the request carries a valid token and a usable identity.
	OutcomeSuccess Outcome = iota
	// OutcomeForward means no credential was presented; other handlers may still serve the request.
	OutcomeForward
	// OutcomeError means a credential was presented and rejected.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeForward:
		return "forward"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// TokenError classifies guard rejections.
type TokenError string

const (
	ErrMissingKey TokenError = "missing key"
	ErrInvalidKey TokenError = "invalid key"
)

func (e TokenError) Error() string { return string(e) }

// Result is the resolution of one guard check.
type Result[T any] struct {
	Outcome  Outcome
	Status   int
	Err      error
	Cause    error
	Identity T
}

// Projector maps verified claims into a caller-specific identity.
type Projector[T any] func(Claims) (T, error)

// Authenticate runs the bearer check for one request. present reports whether an
// Authorization header was sent at all.
func Authenticate[T any](codec *Codec, header string, present bool, project Projector[T]) Result[T] {
	if !present {
		return Result[T]{Outcome: OutcomeForward, Status: http.StatusUnauthorized, Err: ErrMissingKey}
	}

	claims, err := codec.Verify(strings.ReplaceAll(header, bearerPrefix, ""))
	if err != nil {
		return Result[T]{Outcome: OutcomeError, Status: http.StatusUnauthorized, Err: ErrInvalidKey, Cause: err}
	}

	identity, err := project(claims)
	if err != nil {
		return Result[T]{Outcome: OutcomeError, Status: http.StatusUnauthorized, Err: ErrInvalidKey, Cause: err}
	}
	return Result[T]{Outcome: OutcomeSuccess, Status: http.StatusOK, Identity: identity}
}

type identityKey[T any] struct{}

// Guard protects fiber routes with a bearer token projected into T.
type Guard[T any] struct {
	name    string
	codec   *Codec
	project Projector[T]
	logger  *zap.Logger
}

// NewGuard builds a guard. name only appears in logs.
func NewGuard[T any](name string, codec *Codec, project Projector[T], logger *zap.Logger) *Guard[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard[T]{name: name, codec: codec, project: project, logger: logger}
}

// Check resolves the request's Authorization header.
func (g *Guard[T]) Check(c *fiber.Ctx) Result[T] {
	header, present := authorizationHeader(c)
	res := Authenticate(g.codec, header, present, g.project)
	if res.Outcome != OutcomeSuccess {
		g.logger.Debug("guard rejected request",
			zap.String("guard", g.name),
			zap.Stringer("outcome", res.Outcome),
			zap.Error(res.Err),
			zap.NamedError("cause", res.Cause),
			zap.String("path", c.Path()),
		)
	}
	return res
}

// Middleware stores the identity for downstream handlers. A forwarded request goes to
// forward when set and is otherwise answered with the forward status.
func (g *Guard[T]) Middleware(forward fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := g.Check(c)
		switch res.Outcome {
		case OutcomeSuccess:
			c.Locals(identityKey[T]{}, res.Identity)
			return c.Next()
		case OutcomeForward:
			if forward != nil {
				return forward(c)
			}
			return apperrors.NewDomainError(apperrors.CodeUnauthorized, http.StatusText(res.Status), res.Status, nil)
		default:
			return apperrors.NewDomainError(apperrors.CodeUnauthorized, res.Err.Error(), res.Status, nil)
		}
	}
}

// IdentityFrom returns the identity stored by a Guard[T] for this request.
func IdentityFrom[T any](c *fiber.Ctx) (T, bool) {
	identity, ok := c.Locals(identityKey[T]{}).(T)
	return identity, ok
}

func authorizationHeader(c *fiber.Ctx) (string, bool) {
	values, ok := c.GetReqHeaders()[fiber.HeaderAuthorization]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
