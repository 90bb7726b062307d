package server

import (
	"net/http"
	"time"

	"kindle/repository"

	"github.com/gin-gonic/gin"
)

type todoRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending completed"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

func (s *Server) listTodos(c *gin.Context) {
	todos, err := s.todos.ListForUser(
		c.Request.Context(),
		currentUserID(c),
		c.Query("status"),
		c.Query("priority"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	if todos == nil {
		todos = []repository.Todo{}
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (s *Server) getTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	todo, err := s.todos.GetForUser(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (s *Server) createTodo(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	todo := repository.Todo{
		Title:       req.Title,
		Description: req.Description,
		Status:      defaultString(req.Status, "pending"),
		Priority:    defaultString(req.Priority, "medium"),
		DueDate:     req.DueDate,
		UserID:      currentUserID(c),
	}
	if err := s.todos.Create(c.Request.Context(), &todo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "todo created successfully", "todo": todo})
}

func (s *Server) updateTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	todo, err := s.todos.GetForUser(ctx, currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	todo.Title = req.Title
	todo.Description = req.Description
	if req.Status != "" {
		todo.Status = req.Status
	}
	if req.Priority != "" {
		todo.Priority = req.Priority
	}
	todo.DueDate = req.DueDate
	if err := s.todos.Update(ctx, &todo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "todo updated successfully", "todo": todo})
}

func (s *Server) deleteTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.todos.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "todo deleted successfully"})
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
