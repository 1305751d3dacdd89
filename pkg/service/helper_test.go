package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	fvrpc "filevault/pkg/api/fvrpc/v1"
	"filevault/pkg/dedup"
	"filevault/pkg/meta"
	"filevault/pkg/storage/disk"
	"filevault/pkg/vault"

	"github.com/juju/clock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestVault 是所有 Service 测试共享的基础设施初始化逻辑
func setupTestVault(t *testing.T) *vault.Vault {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	metaDB := meta.NewWithConn(db)
	require.NoError(t, metaDB.AutoMigrate(meta.Models()...))

	backend, err := disk.NewAdapterFs(afero.NewMemMapFs(), "/objects")
	require.NoError(t, err)

	return vault.New(meta.NewRepository(metaDB), backend, vault.Options{
		Retry:    dedup.RetryPolicy{Attempts: 5, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Clock: clock.WallClock},
		SpoolFs:  afero.NewMemMapFs(),
		SpoolDir: "/spool",
	})
}

// =============================================================================
// Mocks (模拟 gRPC 流的行为)
// =============================================================================

// MockUploadStream 模拟客户端流式发送
type MockUploadStream struct {
	grpc.ServerStream // 嵌入以满足接口，只覆盖用到的方法
	Ctx               context.Context
	Requests          []*fvrpc.UploadRequest
	cursor            int
	Response          *fvrpc.UploadResponse
}

func (m *MockUploadStream) Context() context.Context {
	if m.Ctx == nil {
		return context.Background()
	}
	return m.Ctx
}

func (m *MockUploadStream) Recv() (*fvrpc.UploadRequest, error) {
	if m.cursor >= len(m.Requests) {
		return nil, io.EOF
	}
	req := m.Requests[m.cursor]
	m.cursor++
	return req, nil
}

func (m *MockUploadStream) SendAndClose(resp *fvrpc.UploadResponse) error {
	m.Response = resp
	return nil
}

// MockDownloadStream 模拟服务端流式响应
type MockDownloadStream struct {
	grpc.ServerStream
	Ctx       context.Context
	Responses []*fvrpc.DownloadResponse
}

func (m *MockDownloadStream) Context() context.Context {
	if m.Ctx == nil {
		return context.Background()
	}
	return m.Ctx
}

func (m *MockDownloadStream) Send(resp *fvrpc.DownloadResponse) error {
	// 深拷贝：真实的 Send 会立即序列化，调用方随后复用缓冲区
	m.Responses = append(m.Responses, proto.Clone(resp).(*fvrpc.DownloadResponse))
	return nil
}

func metaFrame(m *fvrpc.UploadMeta) *fvrpc.UploadRequest {
	return &fvrpc.UploadRequest{Payload: &fvrpc.UploadRequest_Meta{Meta: m}}
}

func chunkFrame(b string) *fvrpc.UploadRequest {
	return &fvrpc.UploadRequest{Payload: &fvrpc.UploadRequest_ChunkData{ChunkData: []byte(b)}}
}

// uploadFrames 构造 meta 帧 + 数据帧
func uploadFrames(name string, chunks ...string) []*fvrpc.UploadRequest {
	reqs := []*fvrpc.UploadRequest{metaFrame(&fvrpc.UploadMeta{Name: name})}
	for _, c := range chunks {
		reqs = append(reqs, chunkFrame(c))
	}
	return reqs
}
