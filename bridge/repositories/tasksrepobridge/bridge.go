package tasksrepobridge

import (
	"context"
	"net/http"

	"github.com/jrazmi/taskboard/bridge/scaffolding/errs"
	"github.com/jrazmi/taskboard/bridge/scaffolding/mid"
	"github.com/jrazmi/taskboard/core/board"
	"github.com/jrazmi/taskboard/core/repositories/tasksrepo"
	"github.com/jrazmi/taskboard/infrastructure/web"
	"github.com/jrazmi/taskboard/sdk/logger"
)

type bridge struct {
	log             *logger.Logger
	tasksRepository *tasksrepo.Repository
}

func newBridge(log *logger.Logger, tasksRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		log:             log,
		tasksRepository: tasksRepository,
	}
}

// httpList returns tasks in creation order, or filtered and sorted when any
// of search, status or sortBy is given.
func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)
	cfg, err := qp.config()
	if err != nil {
		return toAppError(err)
	}

	tasks, err := b.tasksRepository.List(ctx)
	if err != nil {
		return toAppError(err)
	}

	if qp.filtered() {
		tasks = board.Arrange(tasks, cfg)
	}
	return web.NewJSONResponse(tasks)
}

func (b *bridge) httpBoard(ctx context.Context, r *http.Request) web.Encoder {
	cfg, err := parseQueryParams(r).config()
	if err != nil {
		return toAppError(err)
	}

	tasks, err := b.tasksRepository.List(ctx)
	if err != nil {
		return toAppError(err)
	}

	return web.NewJSONResponse(board.Derive(tasks, cfg))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input tasksrepo.CreateTask
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	task, err := b.tasksRepository.Create(ctx, input)
	if err != nil {
		return toAppError(err)
	}

	b.audit(ctx, "task created", task.ID)
	return web.NewJSONResponse(task)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	var input tasksrepo.UpdateTask
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	task, err := b.tasksRepository.Update(ctx, web.Param(r, "task_id"), input)
	if err != nil {
		return toAppError(err)
	}

	b.audit(ctx, "task updated", task.ID)
	return web.NewJSONResponse(task)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	if err := b.tasksRepository.Delete(ctx, web.Param(r, "task_id")); err != nil {
		return toAppError(err)
	}

	b.audit(ctx, "task deleted", web.Param(r, "task_id"))
	return web.NewJSONResponse(DeleteResult{Success: true})
}

// audit records who changed a task. Placeholder tokens may not carry a user.
func (b *bridge) audit(ctx context.Context, msg, taskID string) {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		userID = "unknown"
	}
	b.log.InfoContext(ctx, msg, "task_id", taskID, "user_id", userID)
}
