package course

const placeholderVideo = "https://www.youtube.com/embed/placeholder"

func init() {
	c = buildCatalog(seedModules())
}

func seedModules() []Module {
	return []Module{
		{
			Key:         "module1-3",
			Title:       "Module 1-3: Nền tảng Nghiên cứu Khoa học",
			DownloadURL: "/static/downloads/Chương 1 - 3.pdf",
			Chapters: []Chapter{
				{ID: "1", Title: "Chương 1: Tổng quan về NCKH trong Y học", VideoURL: placeholderVideo},
				{ID: "2", Title: "Chương 2: Đặt vấn đề, Mục tiêu và Giả thuyết", VideoURL: placeholderVideo},
				{ID: "3", Title: "Chương 3: Các thiết kế NCKH và Cỡ mẫu", VideoURL: placeholderVideo},
			},
		},
		{
			Key:         "module4-6",
			Title:       "Module 4-6: Thu thập, Xử lý và Báo cáo",
			DownloadURL: "/static/downloads/Chương 4-6.pdf",
			Chapters: []Chapter{
				{ID: "4", Title: "Chương 4: Biến số và Kỹ thuật Thu thập Số liệu", VideoURL: placeholderVideo},
				{ID: "5", Title: "Chương 5: Tổng hợp, Phân tích và Trình bày Số liệu", VideoURL: placeholderVideo},
				{ID: "6", Title: "Chương 6: Viết và Trình bày Báo cáo NCKH", VideoURL: placeholderVideo},
			},
		},
		{
			Key:   "module7-11",
			Title: "Module 7-11: Lab Thực hành SPSS",
			// One handout covers all three lab chapters.
			DownloadURL: "/static/downloads/Chương 7-8.pdf",
			Chapters: []Chapter{
				{ID: "7", Title: "Chương 7 & 8: Nhập và Làm sạch Dữ liệu", VideoURL: placeholderVideo},
				{ID: "9", Title: "Chương 9: Tính toán và Xử lý Số liệu", VideoURL: placeholderVideo},
				{ID: "10", Title: "Chương 10 & 11: Thống kê Mô tả và Kiểm định", VideoURL: placeholderVideo},
			},
		},
	}
}
