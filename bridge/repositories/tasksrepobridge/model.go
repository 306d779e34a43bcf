package tasksrepobridge

import (
	"errors"
	"net/http"

	"github.com/jrazmi/taskboard/bridge/scaffolding/errs"
	"github.com/jrazmi/taskboard/core/board"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/infrastructure/web"
)

// DeleteResult is the body of a successful delete.
type DeleteResult struct {
	Success bool `json:"success"`
}

type queryParams struct {
	Search string
	Status string
	SortBy string
}

func parseQueryParams(r *http.Request) queryParams {
	return queryParams{
		Search: web.QueryParam(r, "search"),
		Status: web.QueryParam(r, "status"),
		SortBy: web.QueryParam(r, "sortBy"),
	}
}

func (qp queryParams) config() (board.Config, error) {
	return board.ParseConfig(qp.Search, qp.Status, qp.SortBy)
}

// filtered reports whether the caller asked for anything but the raw list.
func (qp queryParams) filtered() bool {
	return qp.Search != "" || qp.Status != "" || qp.SortBy != ""
}

// toAppError maps repository errors onto the response taxonomy.
func toAppError(err error) *errs.Error {
	switch {
	case errors.Is(err, tasksrepo.ErrTaskNotFound):
		return errs.Newf(errs.NotFound, "Task not found")
	case errors.Is(err, tasksrepo.ErrMissingTitle):
		return errs.Newf(errs.InvalidArgument, "Missing required fields")
	case errors.Is(err, tasksrepo.ErrInvalidStatus):
		return errs.Newf(errs.InvalidArgument, "Invalid status")
	case errors.Is(err, board.ErrInvalidConfig):
		return errs.Newf(errs.InvalidArgument, "%s", err)
	}
	return errs.New(errs.InternalOnlyLog, err)
}
