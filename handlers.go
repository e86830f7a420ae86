package picstash

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/picstash/views"
)

func (a *App) handleIndex(c echo.Context) error {
	return Render(c, views.Index(takeFlash(c)))
}

// handleUpload accepts a multipart body with exactly two parts, tags and
// image. The body is validated in full before any row is inserted, so a
// malformed request leaves no orphan record behind.
func (a *App) handleUpload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	tags, data, err := parseUploadForm(form)
	if err != nil {
		return err
	}

	id, err := a.Store.InsertImage(tags)
	if err != nil {
		return err
	}
	if err := a.Blobs.WriteOriginal(id, data); err != nil {
		return err
	}

	// The response is sent without waiting for the thumbnail: a fetch of
	// /thumb/{id} may 404 until the worker gets to this job.
	a.worker.Enqueue(id)

	if err := setFlash(c, fmt.Sprintf("Image %d uploaded.", id)); err != nil {
		c.Logger().Warnf("save flash: %v", err)
	}
	return Render(c, views.Uploaded(id))
}

// parseUploadForm enforces the upload contract: one value part named tags,
// one file part named image, and nothing else.
func parseUploadForm(form *multipart.Form) (string, []byte, error) {
	for name := range form.Value {
		if name != "tags" {
			return "", nil, fmt.Errorf("%w: unexpected part %q", ErrMalformedRequest, name)
		}
	}
	for name := range form.File {
		if name != "image" {
			return "", nil, fmt.Errorf("%w: unexpected part %q", ErrMalformedRequest, name)
		}
	}
	tags := form.Value["tags"]
	if len(tags) == 0 {
		return "", nil, fmt.Errorf("%w: missing part tags", ErrMalformedRequest)
	}
	files := form.File["image"]
	if len(files) == 0 {
		return "", nil, fmt.Errorf("%w: missing part image", ErrMalformedRequest)
	}

	src, err := files[0].Open()
	if err != nil {
		return "", nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return tags[0], data, nil
}

func (a *App) handleImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	data, err := a.Blobs.ReadOriginal(id)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%d.jpg", id))
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

func (a *App) handleThumb(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	data, err := a.Blobs.ReadThumbnail(id)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%d_thumb.jpg", id))
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// handleList returns every record as a JSON array of {id, tags}, ordered
// by id ascending.
func (a *App) handleList(c echo.Context) error {
	records, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// handleSearch returns an HTML fragment of thumbnail links for every
// record whose tags contain the posted substring.
func (a *App) handleSearch(c echo.Context) error {
	needle := c.FormValue("tags")
	records, err := a.Store.SearchImages(needle)
	if err != nil {
		return err
	}
	results := make([]views.Image, len(records))
	for i, r := range records {
		results[i] = views.Image{ID: r.ID, Tags: r.Tags}
	}
	return Render(c, views.SearchResults(needle, results))
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", ErrMalformedRequest, c.Param("id"))
	}
	return id, nil
}
