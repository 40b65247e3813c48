package domain

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already exists")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderExists           = errors.New("order already exists")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrCourseNotFound        = errors.New("course not found")
	ErrCourseMappingNotFound = errors.New("course mapping not found")
	ErrBlogNotFound          = errors.New("blog not found")
)
