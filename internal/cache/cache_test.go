package cache

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	c := New(time.Minute)
	if c == nil {
		t.Fatal("New() returned nil")
	}
}

func TestGetBool(t *testing.T) {
	c := New(time.Minute)
	c.Set("online", true)
	c.Set("offline", false)
	c.Set("count", 3)

	if v, ok := c.GetBool("online"); !ok || !v {
		t.Errorf("GetBool(online) = %v, %v; want true, true", v, ok)
	}
	if v, ok := c.GetBool("offline"); !ok || v {
		t.Errorf("GetBool(offline) = %v, %v; want false, true", v, ok)
	}
	if _, ok := c.GetBool("count"); ok {
		t.Error("expected non-bool value to be a miss")
	}
	if _, ok := c.GetBool("missing"); ok {
		t.Error("expected missing key to be a miss")
	}
}

func TestSet_Overwrites(t *testing.T) {
	c := New(time.Minute)
	c.Set("online", true)
	c.Set("online", false)

	if v, ok := c.GetBool("online"); !ok || v {
		t.Errorf("GetBool(online) = %v, %v; want false, true", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("online", true)

	time.Sleep(50 * time.Millisecond)
	if _, found := c.GetBool("online"); found {
		t.Error("expected key to expire")
	}
}
