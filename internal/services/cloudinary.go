package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MassBabyGeek/StudyHub-backend/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const rootFolder = "studyhub"

// CloudinaryService gère les images (avatars, pièces jointes des posts)
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// ErrCloudinaryNotConfigured les identifiants Cloudinary sont absents de la config
var ErrCloudinaryNotConfigured = errors.New("cloudinary configuration is missing")

func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, ErrCloudinaryNotConfigured
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadAvatar remplace l'avatar de userID (carré 500px centré sur le visage)
func (s *CloudinaryService) UploadAvatar(ctx context.Context, file io.Reader, userID string) (string, error) {
	return s.upload(ctx, file, "avatars", userID, "c_fill,g_face,h_500,w_500")
}

// UploadPostAttachment envoie l'image jointe à un post de groupe
func (s *CloudinaryService) UploadPostAttachment(ctx context.Context, file io.Reader, postID string) (string, error) {
	return s.upload(ctx, file, "posts", postID, "c_limit,h_1600,w_1600")
}

func (s *CloudinaryService) upload(ctx context.Context, file io.Reader, folder, id, transformation string) (string, error) {
	overwrite := true
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       PublicID(folder, id),
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Transformation: transformation,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s to cloudinary: %w", folder, id, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected %s/%s: %s", folder, id, result.Error.Message)
	}
	return result.SecureURL, nil
}

// DeletePostAttachment supprime l'image jointe à un post
func (s *CloudinaryService) DeletePostAttachment(ctx context.Context, postID string) error {
	return s.DeleteImage(ctx, PublicID("posts", postID))
}

// DeleteImage supprime une image par son public ID
func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// PublicID chemin de l'image dans le compte Cloudinary
func PublicID(folder, id string) string {
	return fmt.Sprintf("%s/%s/%s", rootFolder, folder, id)
}
