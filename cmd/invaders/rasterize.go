package main

// rasterize unpacks the cabinet's 1bpp video RAM into an RGBA8888 pixel
// buffer sized windowWidth*windowHeight, rotating the native bitmap 90°
// CCW for display.
//
// The native bitmap is addressed column-major: byte index = col*32 +
// row/8, bit = row%8, for col in [0,nativeWidth) and row in
// [0,nativeHeight). Rotating 90° CCW maps native (col, row) to window
// coordinate (row, nativeWidth-1-col), turning the 224x256 native bitmap
// into the 256x224 image the cabinet's monitor actually displays.
func rasterize(vram []byte, pixels []uint32) {
	const on = 0xFFFFFFFF
	const off = 0x000000FF

	for col := 0; col < nativeWidth; col++ {
		for rowByte := 0; rowByte < nativeHeight/8; rowByte++ {
			b := vram[col*32+rowByte]
			for bit := 0; bit < 8; bit++ {
				row := rowByte*8 + bit
				px := row
				py := nativeWidth - 1 - col

				var v uint32 = off
				if b&(1<<uint(bit)) != 0 {
					v = on
				}
				pixels[py*windowWidth+px] = v
			}
		}
	}
}
