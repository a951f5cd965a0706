package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCalculateMD5 验证MD5摘要为小写十六进制
func TestCalculateMD5(t *testing.T) {
	// 已知向量: md5("hello") = 5d41402abc4b2a76b9719d911017c592
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", CalculateMD5([]byte("hello")))
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", CalculateMD5(nil))
	// 相同内容摘要相同
	assert.Equal(t, CalculateMD5([]byte("resume")), CalculateMD5([]byte("resume")))
}

// TestSafeFileExt 验证扩展名小写化
func TestSafeFileExt(t *testing.T) {
	assert.Equal(t, ".pdf", SafeFileExt("Resume.PDF"))
	assert.Equal(t, ".docx", SafeFileExt("jane.doe.docx"))
	assert.Equal(t, "", SafeFileExt("README"))
}

// TestPointerHelpers 验证指针辅助函数
func TestPointerHelpers(t *testing.T) {
	s := StringPtr("x")
	require.NotNil(t, s)
	assert.Equal(t, "x", *s)

	i := IntPtr(7)
	require.NotNil(t, i)
	assert.Equal(t, 7, *i)

	assert.Nil(t, TimePtr(time.Time{}))
	now := time.Now()
	require.NotNil(t, TimePtr(now))
	assert.Equal(t, now, *TimePtr(now))
}
