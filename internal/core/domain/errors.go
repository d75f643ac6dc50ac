package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrAdminNotFound = errors.New("admin not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrCredentialsRequired = errors.New("username and password are required")
var ErrUsernameRequired = errors.New("username is required for logout")
var ErrForbidden = errors.New("access forbidden")
var ErrReportNotFound = errors.New("report not found")
var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidReportType = errors.New("invalid report type")
var ErrInvalidScreenshot = errors.New("invalid screenshot data")
var ErrLockNotObtained = errors.New("resource is busy, try again")
var ErrReportExists = errors.New("report already exists")
