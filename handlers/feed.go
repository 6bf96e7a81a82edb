package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"feedboard/apierror"
	"feedboard/images"
	"feedboard/models"
	"feedboard/store"
)

// itemsPerPage is the fixed feed page size.
const itemsPerPage = 2

const minFieldLength = 5

// Feed orchestrates the post store, user store and image asset manager
// for the post lifecycle.
type Feed struct {
	posts  store.Posts
	users  store.Users
	images *images.Manager
}

func NewFeed(posts store.Posts, users store.Users, imgs *images.Manager) *Feed {
	return &Feed{posts: posts, users: users, images: imgs}
}

func validatePostFields(title, content string) []apierror.FieldError {
	var fields []apierror.FieldError
	if utf8.RuneCountInString(title) < minFieldLength {
		fields = append(fields, apierror.FieldError{
			Field:   "title",
			Message: "must be at least 5 characters long",
		})
	}
	if utf8.RuneCountInString(content) < minFieldLength {
		fields = append(fields, apierror.FieldError{
			Field:   "content",
			Message: "must be at least 5 characters long",
		})
	}
	return fields
}

func (h *Feed) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	ctx := c.Request.Context()

	total, err := h.posts.Count(ctx)
	if err != nil {
		c.Error(apierror.Internal("failed to fetch posts", err))
		return
	}

	posts, err := h.posts.FindPage(ctx, int64(page-1)*itemsPerPage, itemsPerPage)
	if err != nil {
		c.Error(apierror.Internal("failed to fetch posts", err))
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "fetched posts successfully",
		"posts":      posts,
		"totalItems": total,
	})
}

func (h *Feed) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))
	if fields := validatePostFields(title, content); len(fields) > 0 {
		c.Error(apierror.Validation("validation failed, entered data is incorrect", fields...))
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.Error(apierror.MissingAsset("no image provided"))
		return
	}
	imageURL, err := h.images.Store(fh)
	if errors.Is(err, images.ErrUnsupportedType) {
		// Non-image uploads are dropped as if no file was attached.
		c.Error(apierror.MissingAsset("no image provided"))
		return
	}
	if err != nil {
		c.Error(apierror.Internal("failed to store image", err))
		return
	}

	ctx := c.Request.Context()

	post := &models.Post{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		Creator:  userID,
	}
	postID, err := h.posts.Insert(ctx, post)
	if err != nil {
		c.Error(apierror.Internal("failed to create post", err))
		return
	}

	creator, err := h.users.FindByID(ctx, userID)
	if err != nil {
		c.Error(apierror.Internal("failed to fetch creator", err))
		return
	}
	if err := h.users.PushPost(ctx, userID, postID); err != nil {
		c.Error(apierror.Internal("failed to link post to creator", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "post created successfully",
		"post":    post,
		"creator": gin.H{
			"_id":  creator.ID.Hex(),
			"name": creator.Name,
		},
	})
}

func (h *Feed) GetByID(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		c.Error(apierror.NotFound("could not find post"))
		return
	}

	post, err := h.posts.FindByID(c.Request.Context(), postID)
	if errors.Is(err, store.ErrNotFound) {
		c.Error(apierror.NotFound("could not find post"))
		return
	}
	if err != nil {
		c.Error(apierror.Internal("failed to fetch post", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "post fetched",
		"post":    post,
	})
}

func (h *Feed) UpdateByID(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		c.Error(apierror.NotFound("could not find post"))
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	content := strings.TrimSpace(c.PostForm("content"))
	if fields := validatePostFields(title, content); len(fields) > 0 {
		c.Error(apierror.Validation("validation failed, entered data is incorrect", fields...))
		return
	}

	// The effective image is the uploaded replacement when present,
	// otherwise the caller-supplied existing URL.
	imageURL := strings.TrimSpace(c.PostForm("image"))
	if fh, ferr := c.FormFile("image"); ferr == nil {
		stored, serr := h.images.Store(fh)
		switch {
		case errors.Is(serr, images.ErrUnsupportedType):
			// dropped, keep the hint
		case serr != nil:
			c.Error(apierror.Internal("failed to store image", serr))
			return
		default:
			imageURL = stored
		}
	}
	if imageURL == "" {
		c.Error(apierror.MissingAsset("no file picked"))
		return
	}

	ctx := c.Request.Context()

	post, err := h.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		c.Error(apierror.NotFound("could not find post"))
		return
	}
	if err != nil {
		c.Error(apierror.Internal("failed to fetch post", err))
		return
	}

	if post.Creator != userID {
		c.Error(apierror.Forbidden("not authorized"))
		return
	}

	if imageURL != post.ImageURL {
		go h.images.Remove(post.ImageURL)
	}

	post.Title = title
	post.Content = content
	post.ImageURL = imageURL
	if err := h.posts.Update(ctx, post); err != nil {
		c.Error(apierror.Internal("failed to update post", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "post updated",
		"post":    post,
	})
}

func (h *Feed) DeleteByID(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.Error(err)
		return
	}
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		c.Error(apierror.NotFound("could not find post"))
		return
	}

	ctx := c.Request.Context()

	post, err := h.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		c.Error(apierror.NotFound("could not find post"))
		return
	}
	if err != nil {
		c.Error(apierror.Internal("failed to fetch post", err))
		return
	}

	if post.Creator != userID {
		c.Error(apierror.Forbidden("not authorized"))
		return
	}

	go h.images.Remove(post.ImageURL)

	if err := h.posts.Delete(ctx, postID); err != nil {
		c.Error(apierror.Internal("failed to delete post", err))
		return
	}
	if err := h.users.PullPost(ctx, userID, postID); err != nil {
		c.Error(apierror.Internal("failed to unlink post from creator", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
