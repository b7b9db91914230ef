package repository

import "errors"

var (
	// ErrDuplicateStation 同一网络运营商下的站点编号已存在
	ErrDuplicateStation = errors.New("repository: station already registered for this network provider")

	// ErrStationNotFound 站点不存在或不属于当前机构
	ErrStationNotFound = errors.New("repository: station not found")

	ErrUnsupportedDriver = errors.New("repository: unsupported database driver")
)
