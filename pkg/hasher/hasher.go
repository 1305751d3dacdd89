package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"

	"filevault/pkg/types"

	"github.com/spf13/afero"
	"github.com/zeebo/blake3"
)

// ChunkSize 是流式读取的块大小，内存占用只与它有关，与文件大小无关
const ChunkSize = 32 * 1024

// Algorithm 定义摘要算法
type Algorithm string

const (
	SHA256 Algorithm = "sha256" // 默认
	BLAKE3 Algorithm = "blake3" // 更快，同为 256 bit
)

var (
	ErrDigestComputation = errors.New("digest computation failed")
	ErrUnknownAlgorithm  = errors.New("unknown digest algorithm")
)

// Hasher 是无状态的内容指纹计算器，可以被多个 goroutine 共享
type Hasher struct {
	algo Algorithm
}

// New 创建指定算法的 Hasher。空字符串表示默认的 SHA-256。
func New(algo Algorithm) (*Hasher, error) {
	switch algo {
	case "":
		algo = SHA256
	case SHA256, BLAKE3:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
	return &Hasher{algo: algo}, nil
}

// Default 返回 SHA-256 Hasher
func Default() *Hasher {
	return &Hasher{algo: SHA256}
}

func (h *Hasher) Algorithm() Algorithm { return h.algo }

func (h *Hasher) newHash() hash.Hash {
	if h.algo == BLAKE3 {
		return blake3.New()
	}
	return sha256.New()
}

// Sum 分块消费整个流，返回摘要和读取的字节数
func (h *Hasher) Sum(r io.Reader) (types.Digest, int64, error) {
	hh := h.newHash()
	buf := make([]byte, ChunkSize)
	n, err := io.CopyBuffer(hh, r, buf)
	if err != nil {
		return "", n, fmt.Errorf("%w: %w", ErrDigestComputation, err)
	}
	return types.Digest(hex.EncodeToString(hh.Sum(nil))), n, nil
}

// SumBytes 计算内存数据的摘要
func (h *Hasher) SumBytes(data []byte) types.Digest {
	hh := h.newHash()
	hh.Write(data)
	return types.Digest(hex.EncodeToString(hh.Sum(nil)))
}

// SumSeeker 计算摘要后把流倒回开头，调用方可以继续读取同一个流去存储
func (h *Hasher) SumSeeker(rs io.ReadSeeker) (types.Digest, int64, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", 0, fmt.Errorf("%w: rewind: %w", ErrDigestComputation, err)
	}
	d, n, err := h.Sum(rs)
	if err != nil {
		return "", n, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", n, fmt.Errorf("%w: rewind: %w", ErrDigestComputation, err)
	}
	return d, n, nil
}

// Spooled 是一个落盘的、可重复读取的上传流
type Spooled struct {
	fs     afero.Fs
	file   afero.File
	Digest types.Digest
	Size   int64
}

// Spool 把不可 Seek 的流一边写入临时文件一边计算摘要 (TeeReader)
// 返回的 Spooled 已经倒回开头，使用完必须 Close。
func (h *Hasher) Spool(fs afero.Fs, dir string, r io.Reader) (*Spooled, error) {
	f, err := afero.TempFile(fs, dir, "fv-spool-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create spool: %w", ErrDigestComputation, err)
	}
	sp := &Spooled{fs: fs, file: f}

	hh := h.newHash()
	tee := io.TeeReader(r, hh)
	buf := make([]byte, ChunkSize)
	n, err := io.CopyBuffer(f, tee, buf)
	if err != nil {
		sp.Close()
		return nil, fmt.Errorf("%w: %w", ErrDigestComputation, err)
	}
	sp.Digest = types.Digest(hex.EncodeToString(hh.Sum(nil)))
	sp.Size = n

	if err := sp.Rewind(); err != nil {
		sp.Close()
		return nil, fmt.Errorf("%w: %w", ErrDigestComputation, err)
	}
	return sp, nil
}

func (s *Spooled) Read(p []byte) (int, error) { return s.file.Read(p) }

// Seek 让 Spooled 满足 io.ReadSeeker (S3 上传需要计算长度)
func (s *Spooled) Seek(offset int64, whence int) (int64, error) {
	return s.file.Seek(offset, whence)
}

// Rewind 倒回开头，重试上传时需要重新读取
func (s *Spooled) Rewind() error {
	_, err := s.file.Seek(0, io.SeekStart)
	return err
}

// Close 关闭并删除临时文件
func (s *Spooled) Close() error {
	name := s.file.Name()
	err := s.file.Close()
	if rmErr := s.fs.Remove(name); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}
