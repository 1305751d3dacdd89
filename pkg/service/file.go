package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"buf.build/go/protovalidate"

	fvrpc "filevault/pkg/api/fvrpc/v1"
	"filevault/pkg/vault"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// DownloadChunkSize 是下载流每帧的最大字节数
const DownloadChunkSize = 256 * 1024

type FileService struct {
	fvrpc.UnimplementedFileServiceServer
	vault     *vault.Vault
	validator protovalidate.Validator
}

func NewFileService(v *vault.Vault) *FileService {
	// 校验器初始化开销较大，只做一次
	pv, err := protovalidate.New()
	if err != nil {
		// 通常是 proto 中的规则自相矛盾，服务不应启动
		panic(fmt.Sprintf("failed to initialize validator: %v", err))
	}
	return &FileService{vault: v, validator: pv}
}

// validate 按 proto 中声明的规则校验请求
func (s *FileService) validate(msg proto.Message) error {
	if err := s.validator.Validate(msg); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// ToFileInfo 把 vault 的记录视图转换为线上消息
func ToFileInfo(f *vault.File) *fvrpc.FileInfo {
	info := &fvrpc.FileInfo{
		Id:         f.ID,
		Name:       f.Name,
		Type:       f.Type,
		Size:       f.Size,
		Digest:     f.Digest.String(),
		ObjectId:   f.ObjectID,
		UploadedAt: timestamppb.New(f.UploadedAt),
	}
	if len(f.Labels) > 0 {
		labels, err := structpb.NewStruct(f.Labels)
		if err != nil {
			// 标签来自 JSON 列，正常情况下总能转换
			slog.Warn("labels not representable on the wire", slog.String("id", f.ID), slog.Any("err", err))
		} else {
			info.Labels = labels
		}
	}
	return info
}

// FromLabels 是 ToFileInfo 中标签转换的逆过程
func FromLabels(s *structpb.Struct) map[string]any {
	if s == nil || len(s.GetFields()) == 0 {
		return nil
	}
	return s.AsMap()
}

// ToQuery 把列表请求转换为 vault 的过滤条件
func ToQuery(req *fvrpc.ListFilesRequest) vault.Query {
	if req == nil {
		return vault.Query{}
	}
	return vault.Query{
		FileType:  req.GetFileType(),
		MinSize:   req.MinSize,
		MaxSize:   req.MaxSize,
		StartDate: toTime(req.GetStartDate()),
		EndDate:   toTime(req.GetEndDate()),
		Limit:     int(req.GetLimit()),
		Offset:    int(req.GetOffset()),
	}
}

func toTime(ts *timestamppb.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.AsTime()
	return &t
}

func toListResponse(p *vault.Page) *fvrpc.ListFilesResponse {
	resp := &fvrpc.ListFilesResponse{Files: make([]*fvrpc.FileInfo, 0, len(p.Files)), Total: p.Total}
	for i := range p.Files {
		resp.Files = append(resp.Files, ToFileInfo(&p.Files[i]))
	}
	return resp
}

// =============================================================================
// 1. Upload (Client-Side Streaming)
// =============================================================================

// Upload 接收客户端的流式上传
// 协议约定：第一帧必须是 Meta，后续帧是 ChunkData
func (s *FileService) Upload(stream grpc.ClientStreamingServer[fvrpc.UploadRequest, fvrpc.UploadResponse]) error {
	// --- Step 1: 握手 ---
	first, err := stream.Recv()
	if errors.Is(err, io.EOF) {
		return status.Error(codes.InvalidArgument, "empty stream: expected metadata frame")
	}
	if err != nil {
		return toStatus(err)
	}
	m := first.GetMeta()
	if m == nil {
		return status.Error(codes.InvalidArgument, "protocol violation: first frame must be meta")
	}

	// --- Step 2: gRPC Stream -> io.Reader -> vault ---
	resp, err := s.UploadFrom(stream.Context(), m, NewGrpcStreamReader(stream))
	if err != nil {
		return err
	}

	// --- Step 3: 响应 ---
	return stream.SendAndClose(resp)
}

// UploadFrom 校验 meta 后把 body 写入 vault，本地 CLI 与上传流共用
func (s *FileService) UploadFrom(ctx context.Context, m *fvrpc.UploadMeta, body io.Reader) (*fvrpc.UploadResponse, error) {
	if err := s.validate(m); err != nil {
		return nil, err
	}
	res, err := s.vault.Upload(ctx, vault.UploadRequest{
		Name:   m.GetName(),
		Type:   m.GetType(),
		Size:   m.GetSize(),
		Labels: FromLabels(m.GetLabels()),
		Body:   body,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &fvrpc.UploadResponse{
		File:         ToFileInfo(&res.File),
		Deduplicated: res.Deduplicated,
	}, nil
}

// =============================================================================
// 2. Download (Server-Side Streaming)
// =============================================================================

// Download 第一帧发送元数据，之后按 DownloadChunkSize 发送内容
func (s *FileService) Download(req *fvrpc.DownloadRequest, stream grpc.ServerStreamingServer[fvrpc.DownloadResponse]) error {
	if err := s.validate(req); err != nil {
		return err
	}
	f, rc, err := s.vault.Open(stream.Context(), req.GetId())
	if err != nil {
		return toStatus(err)
	}
	defer rc.Close()

	if err := stream.Send(&fvrpc.DownloadResponse{
		Payload: &fvrpc.DownloadResponse_File{File: ToFileInfo(f)},
	}); err != nil {
		return err
	}
	// 包一层隐藏 WriterTo，保证按 buf 分帧
	buf := make([]byte, DownloadChunkSize)
	if _, err := io.CopyBuffer(NewGrpcStreamWriter(stream), struct{ io.Reader }{rc}, buf); err != nil {
		return toStatus(err)
	}
	return nil
}

// =============================================================================
// 3. Unary
// =============================================================================

func (s *FileService) Get(ctx context.Context, req *fvrpc.GetFileRequest) (*fvrpc.GetFileResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	f, err := s.vault.Get(ctx, req.GetId())
	if err != nil {
		return nil, toStatus(err)
	}
	return &fvrpc.GetFileResponse{File: ToFileInfo(f)}, nil
}

func (s *FileService) Delete(ctx context.Context, req *fvrpc.DeleteFileRequest) (*fvrpc.DeleteFileResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := s.vault.Delete(ctx, req.GetId()); err != nil {
		return nil, toStatus(err)
	}
	return &fvrpc.DeleteFileResponse{}, nil
}

func (s *FileService) List(ctx context.Context, req *fvrpc.ListFilesRequest) (*fvrpc.ListFilesResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	page, err := s.vault.List(ctx, ToQuery(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return toListResponse(page), nil
}

func (s *FileService) Search(ctx context.Context, req *fvrpc.SearchFilesRequest) (*fvrpc.ListFilesResponse, error) {
	// filter 是嵌套消息，区间规则一并校验
	if err := s.validate(req); err != nil {
		return nil, err
	}
	page, err := s.vault.Search(ctx, req.GetQuery(), ToQuery(req.GetFilter()))
	if err != nil {
		return nil, toStatus(err)
	}
	return toListResponse(page), nil
}

func (s *FileService) Stats(ctx context.Context, _ *fvrpc.StatsRequest) (*fvrpc.StatsResponse, error) {
	st, err := s.vault.Stats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &fvrpc.StatsResponse{
		TotalFiles:      st.TotalFiles,
		UniqueFiles:     st.UniqueFiles,
		DuplicateFiles:  st.DuplicateFiles,
		TotalSize:       st.TotalSize,
		ActualSize:      st.ActualSize,
		SpaceSaved:      st.SpaceSaved,
		PercentageSaved: st.PercentageSaved,
	}, nil
}

func (s *FileService) Reap(ctx context.Context, req *fvrpc.ReapRequest) (*fvrpc.ReapResponse, error) {
	report, err := s.vault.Reap(ctx, req.GetApply())
	if err != nil {
		return nil, toStatus(err)
	}
	return &fvrpc.ReapResponse{
		DryRun:     report.DryRun,
		Candidates: int64(len(report.Candidates)),
		Reaped:     int64(report.Reaped),
		Orphans:    int64(report.Orphans),
	}, nil
}
