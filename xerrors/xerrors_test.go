package xerrors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	if err := Wrap(nil, "context"); err != nil {
		t.Errorf("Wrap(nil) = %v，期望 nil", err)
	}

	base := errors.New("base error")
	wrapped := Wrap(base, "context")
	if wrapped.Error() != "context: base error" {
		t.Errorf("Wrap(err).Error() = %q，期望 %q", wrapped.Error(), "context: base error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is(wrapped, base) = false，期望 true")
	}
}

func TestWrapf(t *testing.T) {
	if err := Wrapf(nil, "drift %dms", 3); err != nil {
		t.Errorf("Wrapf(nil) = %v，期望 nil", err)
	}

	wrapped := Wrapf(ErrInvalidInput, "worker id %d", 40)
	if wrapped.Error() != "worker id 40: invalid input" {
		t.Errorf("Wrapf(err).Error() = %q", wrapped.Error())
	}
	if !Is(wrapped, ErrInvalidInput) {
		t.Error("Wrapf 应保留错误链")
	}
}

func TestWithCode(t *testing.T) {
	if err := WithCode(nil, "CODE"); err != nil {
		t.Errorf("WithCode(nil) = %v，期望 nil", err)
	}

	base := errors.New("cache miss")
	coded := WithCode(base, "cache_miss")
	if coded.Error() != "[cache_miss] cache miss" {
		t.Errorf("WithCode(err).Error() = %q", coded.Error())
	}
	if code := GetCode(coded); code != "cache_miss" {
		t.Errorf("GetCode(coded) = %q，期望 cache_miss", code)
	}

	// 包装后依然可以取到错误码
	wrapped := Wrap(coded, "operation failed")
	if code := GetCode(wrapped); code != "cache_miss" {
		t.Errorf("GetCode(wrapped) = %q，期望 cache_miss", code)
	}
	if GetCode(base) != "" {
		t.Error("未附加错误码时 GetCode 应返回空串")
	}
}

func TestHasCode(t *testing.T) {
	inner := WithCode(ErrInvalidInput, "inner")
	outer := WithCode(Wrap(inner, "ctx"), "outer")

	if !HasCode(outer, "outer") || !HasCode(outer, "inner") {
		t.Error("HasCode 应能找到链上的所有错误码")
	}
	if HasCode(outer, "missing") {
		t.Error("HasCode 不应匹配不存在的错误码")
	}
	if HasCode(nil, "outer") {
		t.Error("HasCode(nil) 应返回 false")
	}
}

func TestMust(t *testing.T) {
	if v := Must(42, nil); v != 42 {
		t.Errorf("Must(42, nil) = %d，期望 42", v)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Must(_, err) 未触发 panic")
		}
	}()
	Must(0, errors.New("boom"))
}

func TestCombine(t *testing.T) {
	if err := Combine(nil, nil); err != nil {
		t.Errorf("Combine(nil, nil) = %v，期望 nil", err)
	}

	e1 := errors.New("e1")
	if err := Combine(nil, e1); err != e1 {
		t.Errorf("单个错误应原样返回，得到 %v", err)
	}

	e2 := errors.New("e2")
	err := Combine(e1, nil, e2)
	if err.Error() != "e1 (and 1 more errors)" {
		t.Errorf("Combine().Error() = %q", err.Error())
	}
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Error("MultiError 应支持 errors.Is 匹配任一错误")
	}
}
