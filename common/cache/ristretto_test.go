package cache

import (
	"testing"
	"time"
)

func TestGeneralCacheSetGet(t *testing.T) {
	c, err := NewGeneralCache(100, time.Minute)
	if err != nil {
		t.Fatalf("NewGeneralCache: %v", err)
	}
	defer c.Close()

	if !c.Set("g1", 42, 1) {
		t.Fatalf("Set rejected")
	}
	v, ok := c.Get("g1")
	if !ok || v.(int) != 42 {
		t.Fatalf("Get = %v, %v", v, ok)
	}

	c.Delete("g1")
	if _, ok := c.Get("g1"); ok {
		t.Fatalf("key still present after Delete")
	}
}
