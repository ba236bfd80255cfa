package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
	"github.com/ChrisMayes22/upload-and-serve-image/server/middleware/identity"
	"github.com/ChrisMayes22/upload-and-serve-image/services/images"
)

// HandleUploadImage feeds the posted file through the upload pipeline for
// the resolved identity.
func HandleUploadImage(pipe *images.Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := identity.Resolved(c)

		fileHeader, err := c.FormFile("userImage")
		if err != nil {
			return apperrors.NewIllegalFileType(images.AllowedExtensions)
		}

		file, err := fileHeader.Open()
		if err != nil {
			return apperrors.NewInternalError("failed to open uploaded file").WithInternal(err)
		}
		defer file.Close()

		if _, err := pipe.Store(username, fileHeader.Filename, file); err != nil {
			return err
		}

		return c.Redirect("/welcome", fiber.StatusFound)
	}
}
