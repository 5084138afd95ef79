package handlers

import (
	"net/url"
	"strconv"
	"time"

	config "github.com/anjiri1684/tutoring_center/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

var uploadFolders = map[string]string{
	"question": "tutoring_center_questions",
	"profile":  "tutoring_center_profiles",
}

type UploadHandler struct {
	cfg *config.Config
}

func NewUploadHandler(cfg *config.Config) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// GenerateUploadSignature signs a direct browser upload to Cloudinary.
// ?kind=question|profile picks the folder.
func (h *UploadHandler) GenerateUploadSignature(c *fiber.Ctx) error {
	folder, ok := uploadFolders[c.Query("kind", "profile")]
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Unknown upload kind")
	}

	cld, err := cloudinary.NewFromURL(h.cfg.CloudinaryURL)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to initialize Cloudinary")
	}
	parsedURL, err := url.Parse(h.cfg.CloudinaryURL)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to parse Cloudinary URL")
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{Folder: folder})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to prepare signature params")
	}
	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to sign upload params")
	}

	return c.JSON(fiber.Map{
		"signature":  signature,
		"timestamp":  timestamp,
		"api_key":    cld.Config.Cloud.APIKey,
		"cloud_name": cld.Config.Cloud.CloudName,
		"folder":     folder,
	})
}
