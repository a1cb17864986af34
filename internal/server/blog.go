package server

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"blogsite/internal/config"
	"blogsite/internal/forms"
	"blogsite/internal/markdown"
	"blogsite/internal/models"
)

// blogFromPath loads the blog named by the {id} route parameter. On a
// malformed or unknown id it renders the not-found page and returns nil.
func (s *Server) blogFromPath(w http.ResponseWriter, r *http.Request) *models.Blog {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.renderNotFound(w, r)
		return nil
	}
	blog, err := models.GetBlog(s.DB, id)
	if err != nil {
		s.renderNotFound(w, r)
		return nil
	}
	return blog
}

func (s *Server) handleBlogDetail(w http.ResponseWriter, r *http.Request) {
	blog := s.blogFromPath(w, r)
	if blog == nil {
		return
	}
	content, err := markdown.Render(blog.Content)
	if err != nil {
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "blog_detail", map[string]any{
		"Blog":    blog,
		"Content": template.HTML(content),
		"User":    s.currentUser(r),
	})
}

func (s *Server) handleCreateBlog(w http.ResponseWriter, r *http.Request, user *models.User) {
	form := forms.ParseBlog(r)
	if errs := form.Validate(config.AllowedImageExtensions); len(errs) > 0 {
		blogs, err := models.ListBlogsByUser(s.DB, user.ID)
		if err != nil {
			http.Error(w, "error", http.StatusInternalServerError)
			return
		}
		s.render(w, r, "dashboard", map[string]any{
			"Blogs": blogs, "User": user, "Form": form, "Errors": errs,
		})
		return
	}
	filename := ""
	if form.Image != nil {
		var err error
		filename, err = s.saveUpload(form.Image)
		if err != nil {
			http.Error(w, "could not store image", http.StatusInternalServerError)
			return
		}
	}
	if _, err := models.CreateBlog(s.DB, user.ID, form.Title, form.Content, filename, time.Now().UTC()); err != nil {
		http.Error(w, "could not create blog", http.StatusInternalServerError)
		return
	}
	s.flash(w, "success", "Blog created successfully!")
	http.Redirect(w, r, "/user/dashboard", http.StatusSeeOther)
}

func (s *Server) handleEditBlogForm(w http.ResponseWriter, r *http.Request, user *models.User) {
	blog := s.blogFromPath(w, r)
	if blog == nil {
		return
	}
	if !canModify(user, blog) {
		s.flash(w, "danger", "Unauthorized access!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "edit_blog", map[string]any{
		"Blog": blog,
		"Form": forms.BlogForm{Title: blog.Title, Content: blog.Content},
		"User": user,
	})
}

func (s *Server) handleEditBlog(w http.ResponseWriter, r *http.Request, user *models.User) {
	blog := s.blogFromPath(w, r)
	if blog == nil {
		return
	}
	if !canModify(user, blog) {
		s.flash(w, "danger", "Unauthorized access!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	form := forms.ParseBlog(r)
	if errs := form.Validate(config.AllowedImageExtensions); len(errs) > 0 {
		s.render(w, r, "edit_blog", map[string]any{
			"Blog": blog, "Form": form, "Errors": errs, "User": user,
		})
		return
	}
	image := blog.Image
	if form.Image != nil {
		filename, err := s.saveUpload(form.Image)
		if err != nil {
			http.Error(w, "could not store image", http.StatusInternalServerError)
			return
		}
		image = filename
	}
	if err := models.UpdateBlog(s.DB, blog.ID, form.Title, form.Content, image); err != nil {
		http.Error(w, "could not update blog", http.StatusInternalServerError)
		return
	}
	s.flash(w, "success", "Blog updated successfully!")
	http.Redirect(w, r, "/user/dashboard", http.StatusSeeOther)
}

func (s *Server) handleDeleteBlog(w http.ResponseWriter, r *http.Request, user *models.User) {
	blog := s.blogFromPath(w, r)
	if blog == nil {
		return
	}
	if !canModify(user, blog) {
		s.flash(w, "danger", "Unauthorized access!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	// the stored image file is left behind on purpose
	if err := models.DeleteBlog(s.DB, blog.ID); err != nil {
		http.Error(w, "could not delete blog", http.StatusInternalServerError)
		return
	}
	s.flash(w, "success", "Blog deleted successfully!")
	http.Redirect(w, r, "/user/dashboard", http.StatusSeeOther)
}
