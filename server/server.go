// Package server wires the HTTP surface: routing, authentication, and
// the per-feature gin handlers.
package server

import (
	"kindle/cache"
	"kindle/catalog"
	"kindle/checkout"
	"kindle/config"
	"kindle/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	cfg      config.Config
	users    repository.UserRepository
	books    repository.BookRepository
	cart     repository.CartRepository
	orders   repository.OrderRepository
	todos    repository.TodoRepository
	poetry   repository.PoetryRepository
	chat     repository.ChatRepository
	catalog  *catalog.Engine
	checkout *checkout.Coordinator
	cache    *cache.CatalogCache // nil when redis is not configured
}

func New(cfg config.Config, db *gorm.DB, coordinator *checkout.Coordinator, catalogCache *cache.CatalogCache) *Server {
	books := repository.NewBookRepo(db)
	return &Server{
		cfg:      cfg,
		users:    repository.NewUserRepo(db),
		books:    books,
		cart:     repository.NewCartRepo(db),
		orders:   repository.NewOrderRepo(db),
		todos:    repository.NewTodoRepo(db),
		poetry:   repository.NewPoetryRepo(db),
		chat:     repository.NewChatRepo(db),
		catalog:  catalog.NewEngine(books),
		checkout: coordinator,
		cache:    catalogCache,
	}
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.GET("/me", s.authenticate(), s.me)

	user := api.Group("", s.authenticate())
	{
		user.GET("/catalog/books", s.listBooks)
		user.GET("/catalog/books/:id", s.getBook)

		user.GET("/cart", s.getCart)
		user.POST("/cart", s.addToCart)
		user.PUT("/cart/:id", s.updateCartItem)
		user.DELETE("/cart/:id", s.removeCartItem)

		user.POST("/checkout", s.doCheckout)
		user.GET("/orders", s.listOrders)
		user.GET("/orders/:id", s.getOrder)

		user.GET("/todos", s.listTodos)
		user.GET("/todos/:id", s.getTodo)
		user.POST("/todos", s.createTodo)
		user.PUT("/todos/:id", s.updateTodo)
		user.DELETE("/todos/:id", s.deleteTodo)

		user.GET("/poetry", s.listPoems)
		user.GET("/poetry/:id", s.getPoem)
		user.POST("/poetry", s.createPoem)
		user.PUT("/poetry/:id", s.updatePoem)
		user.DELETE("/poetry/:id", s.deletePoem)

		user.GET("/chat/users", s.chatUsers)
		user.GET("/chat/history/:userId", s.chatHistory)
		user.POST("/chat/send", s.chatSend)
		user.GET("/chat/unread", s.chatUnread)
		user.GET("/chat/conversations", s.chatConversations)

		user.GET("/dashboard/stats", s.dashboardStats)
	}

	admin := api.Group("/admin", s.authenticate(), s.requireAdmin())
	{
		admin.GET("/stats", s.adminStats)
		admin.GET("/users", s.adminUsers)
		admin.PUT("/orders/:id/status", s.adminUpdateOrderStatus)
		admin.POST("/books", s.adminCreateBook)
		admin.PUT("/books/:id", s.adminUpdateBook)
		admin.DELETE("/books/:id", s.adminDeleteBook)
	}

	return router
}
