package handler

import (
	"context"
	"strings"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
	"github.com/deppfellow/fefu-exchange/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type taskBidService interface {
	Create(ctx context.Context, acting *model.Account, taskID int64, in service.TaskBidInput) (*model.TaskBid, error)
}

// CreateTaskBidRequest takes the task from the path. The bidder is the
// acting account; neither can be set in the body.
type CreateTaskBidRequest struct {
	TaskID      int64            `param:"taskID" json:"-" validate:"required,gt=0"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
}

func (r *CreateTaskBidRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return checkAmount("price", *r.Price)
}

type TaskBidHandler struct {
	Handler
	bids taskBidService
}

func NewTaskBidHandler(s *server.Server, bids taskBidService) *TaskBidHandler {
	return &TaskBidHandler{Handler: NewHandler(s), bids: bids}
}

func (h *TaskBidHandler) Create(c echo.Context, req *CreateTaskBidRequest) (*model.TaskBid, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.bids.Create(c.Request().Context(), acting, req.TaskID, service.TaskBidInput{
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
	})
}
