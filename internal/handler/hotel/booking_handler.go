package hotel

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
)

// BookingHandler 预订处理器
type BookingHandler struct {
	bookingService *hotelService.BookingService
}

// NewBookingHandler 创建预订处理器
func NewBookingHandler(bookingSvc *hotelService.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingSvc,
	}
}

// CreateBooking 创建预订
// @Summary 创建预订
// @Tags 预订
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body hotelService.CreateBookingRequest true "请求参数"
// @Success 201 {object} response.Response{data=hotelService.BookingInfo}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req hotelService.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.HandleError(c, errors.ErrInvalidParams.WithMessage("请求体格式错误"))
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, &req)
	handler.MustCreate(c, err, booking)
}

// ListBookings 我的预订列表
// @Summary 我的预订列表
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param pageSize query int false "每页数量"
// @Param status query string false "状态码" Enums(pending, confirmed, cancelled, rejected, completed)
// @Success 200 {object} response.Response{data=response.PageData{list=[]hotelService.BookingInfo}}
// @Router /api/v1/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	list, total, err := h.bookingService.ListMyBookings(c.Request.Context(), userID, p.Page, p.PageSize, c.Query("status"))
	handler.MustSucceedPage(c, err, list, total, p.Page, p.PageSize)
}

// GetBooking 获取预订详情
// @Summary 获取预订详情
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /api/v1/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, bookingID, ok := handler.RequireUserAndParseID(c, "预订")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), bookingID, userID)
	handler.MustSucceed(c, err, booking)
}

// CancelBooking 取消预订
// @Summary 取消预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Failure 409 {object} response.ErrorBody
// @Router /api/v1/bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, bookingID, ok := handler.RequireUserAndParseID(c, "预订")
	if !ok {
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, userID)
	handler.MustSucceed(c, err, booking)
}

// GetVoucher 入住凭证二维码
// @Summary 入住凭证二维码
// @Tags 预订
// @Produce png
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {file} binary
// @Failure 409 {object} response.ErrorBody
// @Router /api/v1/bookings/{id}/voucher [get]
func (h *BookingHandler) GetVoucher(c *gin.Context) {
	userID, bookingID, ok := handler.RequireUserAndParseID(c, "预订")
	if !ok {
		return
	}

	png, err := h.bookingService.Voucher(c.Request.Context(), bookingID, userID)
	if handler.HandleError(c, err) {
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
