package blogservice

import (
	"context"
	"database/sql"
	"math"

	"github.com/karashiro/inkpost/internal/common"
)

const pageSize = 10

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

type CreateBlogRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    int    `json:"author_id"`
	IsPublished bool   `json:"is_published"`
}

// CreateBlog inserts a new blog post. A blog is a draft unless IsPublished is
// explicitly set. Returns ErrAuthorNotFound when the author id does not
// reference an existing user.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateInt(v, req.AuthorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.insert(ctx, req.Title, sanitizeMarkdown(req.Content), req.AuthorID, req.IsPublished)
	if err != nil {
		return nil, err
	}

	if blog.IsPublished {
		s.c.DeletePrefix("published_blogs:")
	}

	return blog, nil
}

// GetPublishedBlogs returns one page of published blogs, newest first. Pages
// are 1-based; out-of-range pages yield an empty list.
func (s *BlogService) GetPublishedBlogs(ctx context.Context, page int) (*BlogList, error) {
	if page < 1 {
		page = 1
	}

	key := common.CacheKeyPublishedBlogs(page)
	if cached, ok := s.c.Get(key); ok {
		if list, ok := cached.(*BlogList); ok {
			return list, nil
		}
	}

	blogs, total, err := s.m.getPublished(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	list := &BlogList{
		Blogs:      blogs,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}

	s.c.Set(key, list)

	return list, nil
}

// GetBlogDetail returns the blog with its author, comments and likes.
// Results are cached; comment and like writers invalidate the key.
func (s *BlogService) GetBlogDetail(ctx context.Context, id int) (*BlogDetail, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyBlogDetail(id)
	if cached, ok := s.c.Get(key); ok {
		if detail, ok := cached.(*BlogDetail); ok {
			return detail, nil
		}
	}

	detail, err := s.m.getDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, detail)

	return detail, nil
}
