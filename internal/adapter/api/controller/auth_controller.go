package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/dto"
	"github.com/lojazap/lojazap-backend/internal/domain/user"
	"github.com/lojazap/lojazap-backend/pkg/jwt"
	"github.com/lojazap/lojazap-backend/pkg/logger"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// tokenTTL é a validade do token de sessão do painel
const tokenTTL = 24 * time.Hour

// AuthController gerencia a autenticação do painel do lojista
type AuthController struct {
	userRepository user.Repository
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		logger:         log,
	}
}

// Login autentica um usuário do painel do lojista
// @Summary Login do painel
// @Description Autentica um usuário do painel e devolve o token JWT da sessão
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	u, err := c.userRepository.FindByEmail(ctx, tenantID, request.Email)
	if err != nil || !u.CheckPassword(request.Password) {
		// Credencial errada e usuário inexistente respondem igual
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", user.ErrInvalidLogin.Error()))
		return
	}

	if !u.IsActive() {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Usuário inativo", "O usuário não está ativo nesta loja"))
		return
	}

	token, err := jwt.GenerateToken(jwt.SubjectMerchant, u.ID, tenantID, tokenTTL)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	u.RegisterLogin()
	if err := c.userRepository.Update(ctx, u); err != nil {
		c.logger.Warn("erro ao registrar último login", "user_id", u.ID, "error", err)
	}

	c.logger.Info("login do painel efetuado", "tenant_id", tenantID, "user_id", u.ID)

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(tokenTTL),
		User:      dto.ToUserResponse(u),
	})
}

// Register cria um novo usuário do painel
// @Summary Cria um usuário do painel
// @Description Cria um novo usuário do painel da loja ativa
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.UserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())

	if _, err := c.userRepository.FindByEmail(ctx, tenantID, request.Email); err == nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Email já cadastrado", "Já existe um usuário com este email nesta loja"))
		return
	}

	u, err := user.NewUser(tenantID, request.Name, request.Email, request.Password, request.Role)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados do usuário inválidos", err.Error()))
		return
	}

	if err := c.userRepository.Create(ctx, u); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// AuthMiddleware valida o token JWT do painel do lojista.
// O token precisa ser de um usuário do painel e da mesma loja da requisição.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if len(header) < 8 || header[:7] != "Bearer " {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Token não fornecido",
				"O cabeçalho 'Authorization: Bearer <token>' é obrigatório",
			))
			return
		}

		claims, err := jwt.ValidateToken(header[7:])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", err.Error()))
			return
		}

		if claims.Subject != jwt.SubjectMerchant {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", "A rota exige uma sessão do painel do lojista"))
			return
		}

		tenantID := pkgtenant.GetTenantIDFromContext(ctx.Request.Context())
		if claims.TenantID != tenantID {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Acesso negado", "O token não pertence a esta loja"))
			return
		}

		ctx.Set("user_id", claims.SubjectID)
		ctx.Next()
	}
}
