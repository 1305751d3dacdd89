package service

import (
	"fmt"

	fvrpc "filevault/pkg/api/fvrpc/v1"
)

// =============================================================================
// 1. Upload Adapter: gRPC Stream -> io.Reader
// =============================================================================

// UploadStream 定义了 Upload 接口所需的最小集合，方便测试 Mock
type UploadStream interface {
	Recv() (*fvrpc.UploadRequest, error)
}

// GrpcStreamReader 将 gRPC Upload 流包装为 io.Reader，交给 vault 暂存并计算摘要
type GrpcStreamReader struct {
	stream UploadStream
	buf    []byte // 从 Recv 拿到、还没被 Read 读走的数据
	err    error  // 流的终止状态 (如 io.EOF)
}

func NewGrpcStreamReader(stream UploadStream) *GrpcStreamReader {
	return &GrpcStreamReader{stream: stream}
}

// Read 实现了 io.Reader 接口
func (r *GrpcStreamReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		req, err := r.stream.Recv()
		if err != nil {
			r.err = err // 记住错误 (可能是 io.EOF)
			return 0, err
		}
		// 流中间出现 Meta 帧是协议错误
		if req.GetMeta() != nil {
			r.err = errUnexpectedMeta
			return 0, r.err
		}
		// 空帧直接跳过
		r.buf = req.GetChunkData()
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// =============================================================================
// 2. Download Adapter: io.Writer -> gRPC Stream
// =============================================================================

// DownloadStream 定义了 Download 接口所需的最小集合
type DownloadStream interface {
	Send(*fvrpc.DownloadResponse) error
}

// GrpcStreamWriter 将 gRPC Download 流包装为 io.Writer
// 每次 Write 发送一帧；配合 io.CopyBuffer 控制帧大小
type GrpcStreamWriter struct {
	stream DownloadStream
}

func NewGrpcStreamWriter(stream DownloadStream) *GrpcStreamWriter {
	return &GrpcStreamWriter{stream: stream}
}

// Write 实现了 io.Writer 接口
// 序列化发生在 Send 内部，p 在返回后可以被复用
func (w *GrpcStreamWriter) Write(p []byte) (int, error) {
	resp := &fvrpc.DownloadResponse{
		Payload: &fvrpc.DownloadResponse_ChunkData{ChunkData: p},
	}
	if err := w.stream.Send(resp); err != nil {
		return 0, fmt.Errorf("grpc send failed: %w", err)
	}
	return len(p), nil
}
