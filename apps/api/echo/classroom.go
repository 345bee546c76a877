package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/classroom"
)

type classroomApi struct {
	svc      classroom.Service
	validate *validator.Validate
}

func registerClassroomAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc classroom.Service,
	validate *validator.Validate,
) {
	api := classroomApi{
		svc:      svc,
		validate: validate,
	}

	cg := g.Group("/classes/:class_id", jwt)

	cg.POST("/assignments", api.draft)
	cg.PATCH("/assignments/:assignment_id", api.publish)
	cg.DELETE("/assignments/:assignment_id", api.destroy)
	cg.GET("/assignments/students/:assignment_id", api.studentView)
	cg.GET("/assignments/teachers/:assignment_id", api.teacherView)

	cg.POST("/attachments", api.createAttachment)
	cg.POST("/assignments/:assignment_id/comments", api.createComment)
	cg.POST("/submissions/:submission_id/comments", api.createPrivateComment)
	cg.POST("/submissions/:submission_id/turn-in", api.turnIn)
}

// Handlers

func (api *classroomApi) draft(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	a, err := api.svc.Draft(ctx.Request().Context(), ctx.Param("class_id"), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating draft assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *classroomApi) publish(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data classroom.UpdateAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}

	a, err := api.svc.Publish(ctx.Request().Context(), ctx.Param("class_id"), ctx.Param("assignment_id"), claims.Subject, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *classroomApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err = api.svc.Delete(ctx.Request().Context(), ctx.Param("class_id"), ctx.Param("assignment_id"), claims.Subject); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classroomApi) studentView(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.StudentView(ctx.Request().Context(), ctx.Param("class_id"), ctx.Param("assignment_id"), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *classroomApi) teacherView(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.TeacherView(ctx.Request().Context(), ctx.Param("class_id"), ctx.Param("assignment_id"), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *classroomApi) createAttachment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data classroom.NewAttachment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttachment")
	}

	att, err := api.svc.AddAttachment(ctx.Request().Context(), ctx.Param("class_id"), claims.Subject, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, att)
}

func (api *classroomApi) createComment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data classroom.NewComment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}

	c, err := api.svc.AddComment(ctx.Request().Context(), ctx.Param("class_id"), ctx.Param("assignment_id"), claims.Subject, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *classroomApi) createPrivateComment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data classroom.NewComment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}

	c, err := api.svc.AddPrivateComment(ctx.Request().Context(), ctx.Param("class_id"), ctx.Param("submission_id"), claims.Subject, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *classroomApi) turnIn(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	sub, err := api.svc.TurnIn(ctx.Request().Context(), ctx.Param("class_id"), ctx.Param("submission_id"), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}
