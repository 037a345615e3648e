package main

import (
	"errors"
	"net/http"

	"github.com/karashiro/inkpost/internal/blogservice"
	"github.com/karashiro/inkpost/internal/common"
)

type createBlogRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    int    `json:"author_id"`
	IsPublished bool   `json:"is_published"`
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input createBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &blogservice.CreateBlogRequest{
		Title:       input.Title,
		Content:     input.Content,
		AuthorID:    input.AuthorID,
		IsPublished: input.IsPublished,
	}

	blog, err := app.blogService.CreateBlog(r.Context(), req)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, "Missing required fields", validationErr.Errors)
		case errors.Is(err, blogservice.ErrAuthorNotFound):
			app.notFoundErrorResponse(w, r, "Author not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Blog created successfully",
		Data:    map[string]any{"blog_id": blog.ID},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := app.readPageParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	list, err := app.blogService.GetPublishedBlogs(r.Context(), page)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Published blogs fetched successfully",
		Data:    list,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid blog ID", nil)
		return
	}

	detail, err := app.blogService.GetBlogDetail(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r, "Blog not found")
		case errors.As(err, &common.ValidationError{}):
			app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid blog ID", nil)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Blog details fetched successfully",
		Data:    detail,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
