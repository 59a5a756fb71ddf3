package constant

import "time"

const (
	AdminCookieName = "admin_jwt"
	UserCookieName  = "jwt"

	DefaultTokenType = "Bearer"
	DefaultTokenTTL  = 24 * time.Hour

	ImageFormField = "image"
	ImagePNG       = "image/png"
	ImageJPEG      = "image/jpeg"
)

// AllowedImageTypes lists the content types accepted for course images.
var AllowedImageTypes = map[string]string{
	ImagePNG:  ".png",
	ImageJPEG: ".jpg",
}
