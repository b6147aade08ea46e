package usecase

import "errors"

var (
	// ErrEmptyImage は画像が空であることを示します。
	ErrEmptyImage = errors.New("image data is empty")
	// ErrImageTooLarge は画像が MaxImageSize を超えていることを示します。
	ErrImageTooLarge = errors.New("image exceeds maximum size")
	// ErrCompanyNotFound は企業情報が見つからないことを示します。
	ErrCompanyNotFound = errors.New("company not found")
)
