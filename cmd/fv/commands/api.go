package commands

import (
	"context"
	"io"

	fvrpc "filevault/pkg/api/fvrpc/v1"
	"filevault/pkg/client"
	"filevault/pkg/service"
	"filevault/pkg/vault"
)

// fileAPI 让子命令不关心仓库是在本地还是在远端服务
type fileAPI interface {
	Upload(ctx context.Context, meta *fvrpc.UploadMeta, r io.Reader) (*fvrpc.UploadResponse, error)
	Download(ctx context.Context, id string, w io.Writer) (*fvrpc.FileInfo, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req *fvrpc.ListFilesRequest) (*fvrpc.ListFilesResponse, error)
	Search(ctx context.Context, req *fvrpc.SearchFilesRequest) (*fvrpc.ListFilesResponse, error)
	Stats(ctx context.Context) (*fvrpc.StatsResponse, error)
	Reap(ctx context.Context, apply bool) (*fvrpc.ReapResponse, error)
	Close() error
}

// localAPI 直接调用进程内的 Vault；上传与一元请求复用 FileService 的校验与转换
type localAPI struct {
	vault *vault.Vault
	svc   *service.FileService
}

func newLocalAPI(v *vault.Vault) *localAPI {
	return &localAPI{vault: v, svc: service.NewFileService(v)}
}

func (l *localAPI) Upload(ctx context.Context, meta *fvrpc.UploadMeta, r io.Reader) (*fvrpc.UploadResponse, error) {
	return l.svc.UploadFrom(ctx, meta, r)
}

func (l *localAPI) Download(ctx context.Context, id string, w io.Writer) (*fvrpc.FileInfo, error) {
	f, rc, err := l.vault.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	if _, err := io.Copy(w, rc); err != nil {
		return nil, err
	}
	return service.ToFileInfo(f), nil
}

func (l *localAPI) Delete(ctx context.Context, id string) error {
	return l.vault.Delete(ctx, id)
}

func (l *localAPI) List(ctx context.Context, req *fvrpc.ListFilesRequest) (*fvrpc.ListFilesResponse, error) {
	return l.svc.List(ctx, req)
}

func (l *localAPI) Search(ctx context.Context, req *fvrpc.SearchFilesRequest) (*fvrpc.ListFilesResponse, error) {
	return l.svc.Search(ctx, req)
}

func (l *localAPI) Stats(ctx context.Context) (*fvrpc.StatsResponse, error) {
	return l.svc.Stats(ctx, &fvrpc.StatsRequest{})
}

func (l *localAPI) Reap(ctx context.Context, apply bool) (*fvrpc.ReapResponse, error) {
	return l.svc.Reap(ctx, &fvrpc.ReapRequest{Apply: apply})
}

// Close 不做事，App 由 root 命令关闭
func (l *localAPI) Close() error { return nil }

// remoteAPI 通过 gRPC 访问 fv-server
type remoteAPI struct {
	c *client.FVClient
}

func (r *remoteAPI) Upload(ctx context.Context, meta *fvrpc.UploadMeta, body io.Reader) (*fvrpc.UploadResponse, error) {
	return r.c.Upload(ctx, meta, body)
}

func (r *remoteAPI) Download(ctx context.Context, id string, w io.Writer) (*fvrpc.FileInfo, error) {
	return r.c.Download(ctx, id, w)
}

func (r *remoteAPI) Delete(ctx context.Context, id string) error {
	_, err := r.c.Files.Delete(ctx, &fvrpc.DeleteFileRequest{Id: id})
	return err
}

func (r *remoteAPI) List(ctx context.Context, req *fvrpc.ListFilesRequest) (*fvrpc.ListFilesResponse, error) {
	return r.c.Files.List(ctx, req)
}

func (r *remoteAPI) Search(ctx context.Context, req *fvrpc.SearchFilesRequest) (*fvrpc.ListFilesResponse, error) {
	return r.c.Files.Search(ctx, req)
}

func (r *remoteAPI) Stats(ctx context.Context) (*fvrpc.StatsResponse, error) {
	return r.c.Files.Stats(ctx, &fvrpc.StatsRequest{})
}

func (r *remoteAPI) Reap(ctx context.Context, apply bool) (*fvrpc.ReapResponse, error) {
	return r.c.Files.Reap(ctx, &fvrpc.ReapRequest{Apply: apply})
}

func (r *remoteAPI) Close() error { return r.c.Close() }
