package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service *services.RoomService
}

func NewRoomHandler(service *services.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

func parseRoomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("room_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid room ID"})
		return 0, false
	}
	return uint(id), true
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.service.Create(c.Request.Context(), &room); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, room)
}

func (h *RoomHandler) GetRoomByID(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	room, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, room)
}

func (h *RoomHandler) GetAllRooms(c *gin.Context) {
	rooms, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, rooms)
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	room.ID = id
	if err := h.service.Update(c.Request.Context(), &room); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, room)
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Room deleted"})
}
