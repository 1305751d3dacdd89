// Package server 组装 gRPC 服务端：拦截器链、服务注册、收发大小限制
package server

import (
	"time"

	fvrpc "filevault/pkg/api/fvrpc/v1"
	"filevault/pkg/metrics"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

const maxMsgSize = 64 * 1024 * 1024

// New 返回注册好 FileService 的 gRPC Server
// 拦截器顺序：logging 在外层，recovery 在内层，panic 也会被记录为 Internal
func New(svc fvrpc.FileServiceServer, m *metrics.Collector) *grpc.Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(UnaryLoggingInterceptor(m), UnaryRecoveryInterceptor),
		grpc.ChainStreamInterceptor(StreamLoggingInterceptor(m), StreamRecoveryInterceptor),
		grpc.MaxRecvMsgSize(maxMsgSize),
		grpc.MaxSendMsgSize(maxMsgSize),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	)
	fvrpc.RegisterFileServiceServer(s, svc)
	return s
}
