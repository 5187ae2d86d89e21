package glcore

import "testing"

func ctxFor(api API, major, minor int) *Context {
	return &Context{api: api, major: major, minor: minor}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name         string
		ctx          *Context
		api          API
		major, minor int
		expect       bool
	}{
		{"exact version", ctxFor(APIOpenGL, 2, 1), APIOpenGL, 2, 1, true},
		{"newer major", ctxFor(APIOpenGL3, 4, 0), APIOpenGL3, 3, 1, true},
		{"newer minor", ctxFor(APIOpenGL, 2, 1), APIOpenGL, 2, 0, true},
		{"older minor", ctxFor(APIOpenGL, 2, 0), APIOpenGL, 2, 1, false},
		{"older major high minor", ctxFor(APIGLES2, 2, 9), APIGLES2, 3, 0, false},
		{"wrong family", ctxFor(APIGLES2, 3, 0), APIOpenGL, 2, 1, false},
		{"family bitmask", ctxFor(APIOpenGL3, 3, 3), APIOpenGL | APIOpenGL3, 2, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.Check(tt.api, tt.major, tt.minor); got != tt.expect {
				t.Errorf("Check(%v, %d, %d) = %v, want %v", tt.api, tt.major, tt.minor, got, tt.expect)
			}
		})
	}
}

func TestStagingSupport(t *testing.T) {
	tests := []struct {
		name     string
		ctx      *Context
		upload   bool
		download bool
	}{
		{"gl 2.1", ctxFor(APIOpenGL, 2, 1), true, false},
		{"gl 2.0", ctxFor(APIOpenGL, 2, 0), false, false},
		{"gl core 3.3", ctxFor(APIOpenGL3, 3, 3), true, true},
		{"gles 2.0", ctxFor(APIGLES2, 2, 0), false, false},
		{"gles 3.0", ctxFor(APIGLES2, 3, 0), true, true},
		{"gles 3.2", ctxFor(APIGLES2, 3, 2), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.SupportsPBOUpload(); got != tt.upload {
				t.Errorf("SupportsPBOUpload() = %v, want %v", got, tt.upload)
			}
			if got := tt.ctx.SupportsPBODownload(); got != tt.download {
				t.Errorf("SupportsPBODownload() = %v, want %v", got, tt.download)
			}
		})
	}
}

func TestIsGLES2Only(t *testing.T) {
	if !ctxFor(APIGLES2, 3, 0).IsGLES2Only() {
		t.Error("pure GLES context should report GLES2-only")
	}
	if ctxFor(APIOpenGL3, 3, 3).IsGLES2Only() {
		t.Error("desktop context should not report GLES2-only")
	}
	if ctxFor(APIOpenGL|APIGLES2, 3, 0).IsGLES2Only() {
		t.Error("context with a desktop profile should not report GLES2-only")
	}
}

func TestTextureTargetToGL(t *testing.T) {
	tests := []struct {
		target TextureTarget
		expect uint32
	}{
		{Target2D, GLTexture2D},
		{TargetRectangle, GLTextureRectangle},
		{TargetExternalOES, GLTextureExternalOES},
		{TextureTarget(0), 0},
	}
	for _, tt := range tests {
		if got := tt.target.ToGL(); got != tt.expect {
			t.Errorf("%v.ToGL() = %#x, want %#x", tt.target, got, tt.expect)
		}
	}
}
