package service

import (
	"context"
	"errors"
	"log/slog"

	"filevault/pkg/dedup"
	"filevault/pkg/storage"
	"filevault/pkg/vault"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errUnexpectedMeta = errors.New("protocol violation: meta frame after data")

// toStatus 把领域错误映射为 gRPC 状态码
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var code codes.Code
	switch {
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, dedup.ErrRecordNotFound):
		code = codes.NotFound
	case errors.Is(err, vault.ErrInvalidRequest), errors.Is(err, errUnexpectedMeta):
		code = codes.InvalidArgument
	case errors.Is(err, dedup.ErrDigestComputation):
		code = codes.InvalidArgument
	case errors.Is(err, dedup.ErrRefCountRace), errors.Is(err, dedup.ErrObjectGone):
		code = codes.Aborted
	case errors.Is(err, dedup.ErrStorageWrite), errors.Is(err, storage.ErrNotFound):
		code = codes.Unavailable
	default:
		code = codes.Internal
	}
	if code == codes.NotFound {
		slog.Debug("record not found", slog.Any("err", err))
	}
	return status.Error(code, err.Error())
}
