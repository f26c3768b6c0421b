// Package admin 提供管理员相关的 HTTP Handler
package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	adminService "github.com/dumeirei/hotel-booking-backend/internal/service/admin"
)

// HotelHandler 酒店管理处理器
type HotelHandler struct {
	hotelService *adminService.HotelAdminService
}

// NewHotelHandler 创建酒店管理处理器
func NewHotelHandler(hotelSvc *adminService.HotelAdminService) *HotelHandler {
	return &HotelHandler{
		hotelService: hotelSvc,
	}
}

// GetBooking 获取预订详情
// @Summary 获取预订详情
// @Tags 预订管理
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Failure 404 {object} response.ErrorBody
// @Router /api/admin/bookings/{id} [get]
func (h *HotelHandler) GetBooking(c *gin.Context) {
	_, bookingID, ok := handler.RequireAdminAndParseID(c, "预订")
	if !ok {
		return
	}

	booking, err := h.hotelService.GetBooking(c.Request.Context(), bookingID)
	handler.MustSucceed(c, err, booking)
}

// ConfirmBooking 确认预订
// @Summary 确认预订
// @Tags 预订管理
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Failure 409 {object} response.ErrorBody
// @Router /api/admin/bookings/{id}/confirm [post]
func (h *HotelHandler) ConfirmBooking(c *gin.Context) {
	adminID, bookingID, ok := handler.RequireAdminAndParseID(c, "预订")
	if !ok {
		return
	}

	booking, err := h.hotelService.ConfirmBooking(c.Request.Context(), bookingID, adminID)
	handler.MustSucceed(c, err, booking)
}

// RejectBooking 拒绝预订
// @Summary 拒绝预订
// @Tags 预订管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Param request body adminService.RejectBookingRequest false "拒绝原因"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Failure 409 {object} response.ErrorBody
// @Router /api/admin/bookings/{id}/reject [post]
func (h *HotelHandler) RejectBooking(c *gin.Context) {
	adminID, bookingID, ok := handler.RequireAdminAndParseID(c, "预订")
	if !ok {
		return
	}

	var req adminService.RejectBookingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handler.HandleError(c, errors.ErrInvalidParams.WithMessage("请求体格式错误"))
			return
		}
	}

	booking, err := h.hotelService.RejectBooking(c.Request.Context(), bookingID, adminID, req.Reason)
	handler.MustSucceed(c, err, booking)
}

// CompleteBooking 完成预订
// @Summary 完成预订
// @Tags 预订管理
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Failure 409 {object} response.ErrorBody
// @Router /api/admin/bookings/{id}/complete [post]
func (h *HotelHandler) CompleteBooking(c *gin.Context) {
	adminID, bookingID, ok := handler.RequireAdminAndParseID(c, "预订")
	if !ok {
		return
	}

	booking, err := h.hotelService.CompleteBooking(c.Request.Context(), bookingID, adminID)
	handler.MustSucceed(c, err, booking)
}

// SetRoomAvailability 房间上下架
// @Summary 房间上下架
// @Tags 房间管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "房间ID"
// @Param request body adminService.SetRoomAvailabilityRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Failure 404 {object} response.ErrorBody
// @Router /api/admin/rooms/{id}/availability [put]
func (h *HotelHandler) SetRoomAvailability(c *gin.Context) {
	adminID, roomID, ok := handler.RequireAdminAndParseID(c, "房间")
	if !ok {
		return
	}

	var req adminService.SetRoomAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		handler.HandleError(c, errors.ErrInvalidParams.
			WithMessage("isAvailable 为必填项").
			WithDetail("field", "isAvailable"))
		return
	}

	room, err := h.hotelService.SetRoomAvailability(c.Request.Context(), roomID, adminID, *req.IsAvailable)
	handler.MustSucceed(c, err, room)
}
