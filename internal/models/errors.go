package models

import "errors"

var (
	// ErrReadingNotFound 解读记录不存在
	ErrReadingNotFound = errors.New("reading not found")

	// ErrEmptyReadingID 记录ID为空
	ErrEmptyReadingID = errors.New("reading ID cannot be empty")
)
