package handler

import (
	"rdrive/internal/app/files"
	"rdrive/internal/app/storage"
	"rdrive/internal/configs"
)

// AppDeps bundles the dependencies shared by all gateway handlers.
type AppDeps struct {
	Config  *configs.AppConfig
	Storage storage.Service

	// Keys is the process-wide key synthesizer. The multipart upload path
	// and the presigned upload path must share it so both produce keys
	// under the same uniqueness rule.
	Keys *files.KeyMaker
}
