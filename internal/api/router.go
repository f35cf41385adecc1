package api

import (
	"net/http" // HTTP status codes

	"easy_pay/internal/config"     // Application configuration
	"easy_pay/internal/domain"     // Transfer kinds
	"easy_pay/internal/ledger"     // Transfer engine
	"easy_pay/internal/middleware" // Auth and admin gates
	"easy_pay/internal/store"      // Identity and ledger stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps are the long-lived handles the handlers share. Redis may be nil, which disables caching.
type Deps struct {
	Config *config.Config
	Users  *store.Users
	Txs    *store.Transactions
	Engine *ledger.Engine
	Redis  *redis.Client
}

// NewRouter wires every route
func NewRouter(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Easy Pay is running")
	})

	// Public routes
	r.POST("/user", RegisterHandler(d.Users, d.Redis, cfg.BcryptCost)) // Registration endpoint
	r.GET("/login", LoginHandler(d.Users, cfg))                        // Login endpoint
	r.POST("/jwt", IssueTokenHandler(cfg))                             // Token issue endpoint
	r.POST("/logout", LogoutHandler(cfg))                              // Logout endpoint

	// Session routes (protected by JWT)
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authed.GET("/verifyToken", VerifyTokenHandler())
	authed.POST("/sendMoney", TransferHandler(d.Engine, domain.TxSend, d.Redis))
	authed.POST("/cashOut", TransferHandler(d.Engine, domain.TxCashOut, d.Redis))
	authed.POST("/cashIn", TransferHandler(d.Engine, domain.TxCashIn, d.Redis))
	authed.GET("/userData/:email", UserDataHandler(d.Users, d.Redis, cfg.CacheTTL))
	authed.GET("/transaction/:number", UserTransactionsHandler(d.Txs, store.EitherSide, d.Redis, cfg.CacheTTL))
	authed.GET("/singleUserTransaction/:number", UserTransactionsHandler(d.Txs, store.SentBy, d.Redis, cfg.CacheTTL))

	// Admin routes (protected, admin only)
	admin := r.Group("")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(d.Users))
	admin.PATCH("/userBlock/:id", UserBlockHandler(d.Users, d.Redis))
	admin.PATCH("/agentAccept/:id", AgentAcceptHandler(d.Users, d.Redis))
	admin.PATCH("/agentReject/:id", AgentRejectHandler(d.Users, d.Redis))
	admin.GET("/totalBalance", TotalBalanceHandler(d.Users, d.Redis, cfg.CacheTTL))
	admin.GET("/allUser", ListUsersHandler(d.Users, d.Redis, cfg.CacheTTL))
	admin.GET("/allAgent", ListAgentsHandler(d.Users, d.Redis, cfg.CacheTTL))
	admin.GET("/allTransaction", ListTransactionsHandler(d.Txs, d.Redis, cfg.CacheTTL))

	return r, nil
}
