package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/booksapi/pkg/response"
)

// Hello 根路径
// @Summary      Hello World
// @Tags         系统
// @Produce      html
// @Success      200 {string} string "<h1>Hello World!</h1>"
// @Router       / [get]
func Hello(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>Hello World!</h1>"))
}

// Ping 健康检查
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} response.Message
// @Router       /ping [get]
func Ping(c *gin.Context) {
	response.OK(c, response.Message{Message: "pong"})
}
