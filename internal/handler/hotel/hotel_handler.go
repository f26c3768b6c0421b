// Package hotel 提供酒店预订相关的 HTTP Handler
package hotel

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
)

// HotelHandler 酒店处理器
type HotelHandler struct {
	hotelService *hotelService.HotelService
}

// NewHotelHandler 创建酒店处理器
func NewHotelHandler(hotelSvc *hotelService.HotelService) *HotelHandler {
	return &HotelHandler{
		hotelService: hotelSvc,
	}
}

// ListRooms 获取酒店房间列表
// @Summary 获取酒店房间列表
// @Tags 酒店
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=[]hotelService.RoomInfo}
// @Failure 404 {object} response.ErrorBody
// @Router /api/v1/hotels/{id}/rooms [get]
func (h *HotelHandler) ListRooms(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	rooms, err := h.hotelService.ListRooms(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, rooms)
}

// GetRoom 获取房间详情
// @Summary 获取房间详情
// @Tags 酒店
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Failure 404 {object} response.ErrorBody
// @Router /api/v1/rooms/{id} [get]
func (h *HotelHandler) GetRoom(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	room, err := h.hotelService.GetRoom(c.Request.Context(), roomID)
	handler.MustSucceed(c, err, room)
}

// Quote 试算房间在指定日期能否预订及价格
// @Summary 预订试算
// @Tags 酒店
// @Produce json
// @Param id path int true "房间ID"
// @Param checkInDate query string true "入住日期 YYYY-MM-DD"
// @Param checkOutDate query string true "离店日期 YYYY-MM-DD"
// @Param numberOfGuests query int true "入住人数"
// @Success 200 {object} response.Response{data=hotelService.Quote}
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /api/v1/rooms/{id}/quote [get]
func (h *HotelHandler) Quote(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	guests := 0
	if raw := c.Query("numberOfGuests"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handler.HandleError(c, errors.ErrInvalidParams.
				WithMessage("入住人数格式错误").
				WithDetail("field", "numberOfGuests"))
			return
		}
		guests = n
	}

	req, err := hotelService.ParseAdmissionRequest(c.Query("checkInDate"), c.Query("checkOutDate"), guests)
	if handler.HandleError(c, err) {
		return
	}

	quote, err := h.hotelService.Quote(c.Request.Context(), roomID, req)
	handler.MustSucceed(c, err, quote)
}

// ListBookingStatuses 预订状态字典
// @Summary 预订状态字典
// @Tags 酒店
// @Produce json
// @Success 200 {object} response.Response{data=[]models.BookingStatus}
// @Router /api/v1/booking-statuses [get]
func (h *HotelHandler) ListBookingStatuses(c *gin.Context) {
	statuses, err := h.hotelService.ListBookingStatuses(c.Request.Context())
	handler.MustSucceed(c, err, statuses)
}
