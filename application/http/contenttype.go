package http

// Text
const (
	ContentTypeTextPlain      = "text/plain"
	ContentTypeTextHTML       = "text/html"
	ContentTypeTextCSS        = "text/css"
	ContentTypeTextJavaScript = "text/javascript"
)

// Application
const (
	ContentTypeApplicationJavaScript  = "application/javascript"
	ContentTypeApplicationJSON        = "application/json"
	ContentTypeApplicationXML         = "application/xml"
	ContentTypeApplicationForm        = "application/x-www-form-urlencoded"
	ContentTypeApplicationOctetStream = "application/octet-stream"
	ContentTypeApplicationPDF         = "application/pdf"
	ContentTypeApplicationZIP         = "application/zip"
	ContentTypeApplicationGZIP        = "application/gzip"
	ContentTypeApplicationTAR         = "application/x-tar"
	ContentTypeApplicationRAR         = "application/vnd.rar"
	ContentTypeApplication7Z          = "application/x-7z-compressed"
	ContentTypeApplicationSQL         = "application/sql"
	ContentTypeApplicationGraphQL     = "application/graphql"
)

// Image
const (
	ContentTypeImagePNG  = "image/png"
	ContentTypeImageJPEG = "image/jpeg"
	ContentTypeImageGIF  = "image/gif"
	ContentTypeImageWebP = "image/webp"
	ContentTypeImageSVG  = "image/svg+xml"
	ContentTypeImageBMP  = "image/bmp"
	ContentTypeImageTIFF = "image/tiff"
	ContentTypeImageIcon = "image/x-icon"
)

// Audio
const (
	ContentTypeAudioMPEG = "audio/mpeg"
	ContentTypeAudioOGG  = "audio/ogg"
	ContentTypeAudioWAV  = "audio/wav"
	ContentTypeAudioWebM = "audio/webm"
	ContentTypeAudioAAC  = "audio/aac"
	ContentTypeAudioFLAC = "audio/flac"
)

// Video
const (
	ContentTypeVideoMP4     = "video/mp4"
	ContentTypeVideoMPEG    = "video/mpeg"
	ContentTypeVideoWebM    = "video/webm"
	ContentTypeVideoOGG     = "video/ogg"
	ContentTypeVideoMSVideo = "video/x-msvideo"
	ContentTypeVideoFLV     = "video/x-flv"
)

// Multipart
const (
	ContentTypeMultipartFormData   = "multipart/form-data"
	ContentTypeMultipartByteRanges = "multipart/byteranges"
)
