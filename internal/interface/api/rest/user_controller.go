package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"golden-movie-studio/internal/application/ports"
	domain "golden-movie-studio/internal/domain/user"
	"golden-movie-studio/internal/interface/api/rest/dto/user"
	"golden-movie-studio/internal/interface/api/rest/validator"
)

const (
	msgRegistered    = "Cadastro realizado com sucesso!"
	msgDuplicate     = "Este email já está cadastrado."
	msgSaveFailed    = "Erro ao salvar o cadastro."
	msgUnexpected    = "Erro ao processar cadastro. Tente novamente."
	msgInvalidBody   = "Corpo da requisição inválido."
	msgUserNotFound  = "Usuário não encontrado."
	msgLookupFailed  = "Erro ao consultar usuário."
	msgMethodNotUsed = "Método %s não permitido."
	msgUsePost       = "Método %s não permitido. Use POST."
)

type UserController struct {
	userService  ports.UserService
	logger       *zap.Logger
	mCounter     *prometheus.CounterVec
	exposeErrors bool
}

// NewUserController registers the signup and lookup routes. exposeErrors adds
// internal error text to 500 responses and must be off in production.
func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	exposeErrors bool,
) *UserController {
	uc := &UserController{
		userService:  userService,
		logger:       logger,
		mCounter:     mCounter,
		exposeErrors: exposeErrors,
	}

	r.POST(RouteCadastro, uc.RegisterHandler)
	r.POST(RouteAPICadastro, uc.RegisterHandler)
	r.GET(RouteUserByID, uc.GetUserByIDHandler)
	r.GET(RouteUserByEmail, uc.GetUserByEmailHandler)

	r.HandleMethodNotAllowed = true
	r.NoMethod(uc.MethodNotAllowedHandler)

	return uc
}

func (uc *UserController) RegisterHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		uc.rejectInvalid(c, msgInvalidBody)
		return
	}

	req = validator.Normalize(req)
	if err := validator.ValidateRegistration(req); err != nil {
		uc.rejectInvalid(c, err.Error())
		return
	}

	_, err := uc.userService.RegisterUser(c.Request.Context(), user.ToDomainRegistration(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": msgDuplicate})
		case errors.Is(err, domain.ErrStorage):
			uc.fail(c, msgSaveFailed, "RegisterUser() storage error", err)
		default:
			uc.fail(c, msgUnexpected, "RegisterUser() error", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgRegistered})
}

func (uc *UserController) GetUserByIDHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), domain.ID(id))
	uc.respondUser(c, u, err, "FindUserByID() error")
}

func (uc *UserController) GetUserByEmailHandler(c *gin.Context) {
	u, err := uc.userService.FindUserByEmail(c.Request.Context(), c.Param("email"))
	uc.respondUser(c, u, err, "FindUserByEmail() error")
}

func (uc *UserController) MethodNotAllowedHandler(c *gin.Context) {
	format := msgMethodNotUsed
	if p := c.Request.URL.Path; p == RouteCadastro || p == RouteAPICadastro {
		format = msgUsePost
	}

	c.JSON(http.StatusMethodNotAllowed, gin.H{"message": fmt.Sprintf(format, c.Request.Method)})
}

func (uc *UserController) respondUser(c *gin.Context, u *domain.User, err error, logMsg string) {
	if err != nil {
		uc.fail(c, msgLookupFailed, logMsg, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgUserNotFound})
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) rejectInvalid(c *gin.Context, msg string) {
	if uc.mCounter != nil {
		uc.mCounter.WithLabelValues("validation_failed_total").Inc()
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

func (uc *UserController) fail(c *gin.Context, msg, logMsg string, err error) {
	uc.logger.Error(logMsg, zap.Error(err), zap.String("route", c.FullPath()))

	body := gin.H{"message": msg}
	if uc.exposeErrors {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
