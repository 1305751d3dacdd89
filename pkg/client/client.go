package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	fvrpc "filevault/pkg/api/fvrpc/v1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// UploadChunkSize 是上传流每帧的最大字节数
const UploadChunkSize = 256 * 1024

// FVClient 封装了与 FileVault 服务端的连接
type FVClient struct {
	conn *grpc.ClientConn

	Files fvrpc.FileServiceClient
}

// NewFVClient 创建并初始化客户端
// 连接在后台建立，地址不可达要到第一次调用才会报错
func NewFVClient(addr string, extra ...grpc.DialOption) (*FVClient, error) {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(64*1024*1024),
			grpc.MaxCallSendMsgSize(64*1024*1024),
		),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                10 * time.Second,
			Timeout:             20 * time.Second,
			PermitWithoutStream: true,
		}),
	}
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for %s: %w", addr, err)
	}
	return &FVClient{
		conn:  conn,
		Files: fvrpc.NewFileServiceClient(conn),
	}, nil
}

// Close 关闭底层连接
func (c *FVClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Upload 发送 meta 帧，然后把 r 切成 UploadChunkSize 的帧发送
func (c *FVClient) Upload(ctx context.Context, meta *fvrpc.UploadMeta, r io.Reader) (*fvrpc.UploadResponse, error) {
	stream, err := c.Files.Upload(ctx)
	if err != nil {
		return nil, err
	}
	if err := stream.Send(&fvrpc.UploadRequest{
		Payload: &fvrpc.UploadRequest_Meta{Meta: meta},
	}); err != nil {
		return nil, sendErr(stream, err)
	}

	buf := make([]byte, UploadChunkSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			// Send 返回前已完成编码，buf 可以复用
			if err := stream.Send(&fvrpc.UploadRequest{
				Payload: &fvrpc.UploadRequest_ChunkData{ChunkData: buf[:n]},
			}); err != nil {
				return nil, sendErr(stream, err)
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("read upload source: %w", rerr)
		}
	}
	return stream.CloseAndRecv()
}

// sendErr: Send 遇到 io.EOF 说明服务端已经结束了流，真实错误要从 CloseAndRecv 取
func sendErr(stream grpc.ClientStreamingClient[fvrpc.UploadRequest, fvrpc.UploadResponse], err error) error {
	if errors.Is(err, io.EOF) {
		_, rerr := stream.CloseAndRecv()
		if rerr != nil {
			return rerr
		}
	}
	return err
}

// Download 把内容写入 w，返回第一帧携带的元数据
func (c *FVClient) Download(ctx context.Context, id string, w io.Writer) (*fvrpc.FileInfo, error) {
	stream, err := c.Files.Download(ctx, &fvrpc.DownloadRequest{Id: id})
	if err != nil {
		return nil, err
	}
	var info *fvrpc.FileInfo
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if f := resp.GetFile(); f != nil {
			info = f
		}
		if chunk := resp.GetChunkData(); len(chunk) > 0 {
			if _, err := w.Write(chunk); err != nil {
				return nil, fmt.Errorf("write download: %w", err)
			}
		}
	}
	if info == nil {
		return nil, errors.New("protocol violation: download stream carried no file info")
	}
	return info, nil
}
