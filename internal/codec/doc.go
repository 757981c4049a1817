// Package codec reads image files into imaging buffers and writes buffers
// back out.
//
// The file extension selects the format. Plain PPM ("P3") files are parsed
// and written here so that their max channel value survives a round trip.
// Every other format goes through github.com/disintegration/imaging, which
// handles PNG, JPEG, GIF, BMP and TIFF; WebP decoding is registered from
// golang.org/x/image/webp.
//
// # Channel Scale
//
// Library formats are 8-bit on the way in: decoded pixels are converted to
// RGBA and stored with a max value of 255. On the way out a buffer whose max
// is not 255 is rescaled to 8 bits before encoding.
package codec
